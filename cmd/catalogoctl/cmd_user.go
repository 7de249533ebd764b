package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/jhoicas/catalogo-api/internal/application/auth"
	"github.com/jhoicas/catalogo-api/internal/application/dto"
	"github.com/jhoicas/catalogo-api/internal/domain/entity"
	"github.com/jhoicas/catalogo-api/internal/infrastructure/postgres"
)

var userCmd = &cobra.Command{
	Use:   "user",
	Short: "Gestión de usuarios",
}

var userInput dto.CreateUserRequest

// catalogoctl user create --email ... --password ... --role SUPER_ADMIN
var userCreateCmd = &cobra.Command{
	Use:   "create",
	Short: "Crea un usuario con el rol indicado",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, pool, _, err := bootDB(ctx)
		if err != nil {
			return err
		}
		defer pool.Close()

		uc := auth.NewAuthUseCase(postgres.NewUserRepository(pool), auth.JWTConfig{
			Secret:     cfg.JWT.Secret,
			ExpMinutes: cfg.JWT.Expiration,
			Issuer:     cfg.JWT.Issuer,
		})
		user, err := uc.CreateUser(ctx, userInput)
		if err != nil {
			return err
		}
		fmt.Fprintf(cmd.OutOrStdout(), "usuario %s creado (id=%s, rol=%s)\n", user.Email, user.ID, user.Role)
		return nil
	},
}

func init() {
	f := userCreateCmd.Flags()
	f.StringVar(&userInput.Name, "name", "", "nombre del usuario")
	f.StringVar(&userInput.Email, "email", "", "email (login)")
	f.StringVar(&userInput.Password, "password", "", "password (mínimo 8 caracteres)")
	f.StringVar(&userInput.Role, "role", entity.RoleUser, "USER | ADMIN | SUPER_ADMIN")
	_ = userCreateCmd.MarkFlagRequired("email")
	_ = userCreateCmd.MarkFlagRequired("password")

	userCmd.AddCommand(userCreateCmd)
}
