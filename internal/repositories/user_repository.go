package repository

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/aaravmahajanofficial/storefront-checkout/internal/models"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/tablestore"
	"github.com/aaravmahajanofficial/storefront-checkout/internal/utils"
	"github.com/go-playground/validator/v10"
)

var ErrUserNotFound = errors.New("user not found")

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
}

type userRepository struct {
	client   *tablestore.Client
	tableID  int64
	validate *validator.Validate
}

func NewUserRepo(client *tablestore.Client, tableID int64, validate *validator.Validate) UserRepository {
	return &userRepository{client: client, tableID: tableID, validate: validate}
}

// CreateUser stores the user and sets user.ID from the created row.
func (r *userRepository) CreateUser(ctx context.Context, user *models.User) error {

	req := createUserRequest{
		Name:         user.Name,
		Email:        strings.ToLower(strings.TrimSpace(user.Email)),
		Phone:        user.Phone,
		PasswordHash: user.PasswordHash,
	}
	if err := utils.ValidateStruct(r.validate, req); err != nil {
		return fmt.Errorf("invalid user row: %w", err)
	}

	created, err := tablestore.CreateRow[userRow](ctx, r.client, r.tableID, req)
	if err != nil {
		return err
	}

	user.ID = created.ID
	user.Email = created.Email

	return nil
}

func (r *userRepository) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {

	email = strings.ToLower(strings.TrimSpace(email))

	rows, err := tablestore.ListRows[userRow](ctx, r.client, r.tableID, tablestore.Equal("email", email))
	if err != nil {
		return nil, err
	}

	if len(rows) == 0 {
		return nil, ErrUserNotFound
	}

	return rows[0].toModel(), nil
}
