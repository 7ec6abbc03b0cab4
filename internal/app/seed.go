package app

import (
	"context"
	"fmt"

	"github.com/ADT-VOLUNTEERS-CASE/SERVER/domain"
)

type seedAccount struct {
	input    domain.RegisterInput
	register func(ctx context.Context, input domain.RegisterInput) (*domain.AuthResult, error)
}

// SeedAccounts creates the bootstrap admin, user and coordinator. An account
// is skipped when its email or phone number is already taken; every created
// account receives a refresh token.
func (c *Container) SeedAccounts(ctx context.Context) error {
	accounts := []seedAccount{
		{
			input: domain.RegisterInput{
				Firstname:   "adminFirstname",
				Lastname:    "adminLastname",
				Patronymic:  "adminPatronymic",
				PhoneNumber: "+67676767671",
				Email:       "admin@example.com",
				Password:    c.Config.AdminPassword,
			},
			register: c.AuthSvc.RegisterAdmin,
		},
		{
			input: domain.RegisterInput{
				Firstname:   "userFirstname",
				Lastname:    "userLastname",
				Patronymic:  "userPatronymic",
				PhoneNumber: "+79999999999",
				Email:       "user@example.com",
				Password:    c.Config.BaseUserPassword,
			},
			register: c.AuthSvc.Register,
		},
		{
			input: domain.RegisterInput{
				Firstname:   "coordinatorFirstname",
				Lastname:    "coordinatorLastname",
				Patronymic:  "coordinatorPatronymic",
				PhoneNumber: "+8888888888",
				Email:       "coordinator@example.com",
				Password:    c.Config.CoordinatorPassword,
			},
			register: c.AuthSvc.RegisterCoordinator,
		},
	}

	for _, a := range accounts {
		taken, err := c.taken(ctx, a.input)
		if err != nil {
			return err
		}
		if taken {
			continue
		}
		if _, err := a.register(ctx, a.input); err != nil {
			return fmt.Errorf("failed to seed %s: %w", a.input.Email, err)
		}
		c.Log.Info("seeded account", "email", a.input.Email)
	}
	return nil
}

func (c *Container) taken(ctx context.Context, in domain.RegisterInput) (bool, error) {
	exists, err := c.UserRepo.ExistsByEmail(ctx, in.Email)
	if err != nil || exists {
		return exists, err
	}
	return c.UserRepo.ExistsByPhone(ctx, in.PhoneNumber)
}
