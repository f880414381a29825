package auth

import (
	"context"
	"errors"
	"time"

	"github.com/arangodb/go-driver/v2/arangodb"
	"github.com/campusnews/campusnews-backend/database"
	"github.com/campusnews/campusnews-backend/model"
)

// queryTimeout bounds every user-store query so a hung database surfaces
// as a 504 instead of an open-ended request
const queryTimeout = 8 * time.Second

// ErrUserNotFound is returned when no user matches the lookup
var ErrUserNotFound = errors.New("user not found")

func withQueryTimeout(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(ctx, queryTimeout)
}

// IsTimeout reports whether err was caused by a query deadline
func IsTimeout(err error) bool {
	return errors.Is(err, context.DeadlineExceeded)
}

// getUserByEmail looks up a user by normalized email. The lookup is
// idempotent, so a transient database failure is retried once.
func getUserByEmail(ctx context.Context, db database.DBConnection, email string) (*model.User, error) {
	var user *model.User
	var err error
	for attempt := 0; attempt < 2; attempt++ {
		user, err = getUserByEmailOnce(ctx, db, email)
		if err == nil || errors.Is(err, ErrUserNotFound) || IsTimeout(err) {
			return user, err
		}
	}
	return user, err
}

func getUserByEmailOnce(ctx context.Context, db database.DBConnection, email string) (*model.User, error) {
	qctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `FOR u IN users FILTER u.email == @email LIMIT 1 RETURN u`
	cursor, err := db.Database.Query(qctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"email": model.NormalizeEmail(email)},
	})
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	if !cursor.HasMore() {
		return nil, ErrUserNotFound
	}

	var user model.User
	if _, err := cursor.ReadDocument(qctx, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func createUser(ctx context.Context, db database.DBConnection, user *model.User) error {
	qctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	meta, err := db.Collections["users"].CreateDocument(qctx, user)
	if err != nil {
		return err
	}
	user.Key = meta.Key
	return nil
}

func updateUser(ctx context.Context, db database.DBConnection, user *model.User) error {
	qctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `
		FOR u IN users
		FILTER u.email == @email
		UPDATE u WITH {
			name: @name,
			password_hash: @password_hash,
			provider: @provider,
			google_id: @google_id,
			is_admin: @is_admin,
			is_super_admin: @is_super_admin,
			updated_at: @updated_at
		} IN users OPTIONS { keepNull: false }
	`
	var passwordHash interface{}
	if user.PasswordHash != nil {
		passwordHash = *user.PasswordHash
	}
	bindVars := map[string]interface{}{
		"email":          user.Email,
		"name":           user.Name,
		"password_hash":  passwordHash,
		"provider":       user.Provider,
		"google_id":      user.GoogleID,
		"is_admin":       user.IsAdmin,
		"is_super_admin": user.IsSuperAdmin,
		"updated_at":     user.UpdatedAt,
	}
	cursor, err := db.Database.Query(qctx, query, &arangodb.QueryOptions{BindVars: bindVars})
	if err != nil {
		return err
	}
	cursor.Close()
	return nil
}

func deleteUserByEmail(ctx context.Context, db database.DBConnection, email string) (int, error) {
	qctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `
		FOR u IN users
			FILTER u.email == @email
			REMOVE u IN users
			COLLECT WITH COUNT INTO removed
			RETURN removed
	`
	cursor, err := db.Database.Query(qctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"email": model.NormalizeEmail(email)},
	})
	if err != nil {
		return 0, err
	}
	defer cursor.Close()

	count := 0
	if cursor.HasMore() {
		if _, err := cursor.ReadDocument(qctx, &count); err != nil {
			return 0, err
		}
	}
	return count, nil
}

// deleteAllUsers removes every user except the protected email
func deleteAllUsers(ctx context.Context, db database.DBConnection, keepEmail string) (int, error) {
	qctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `
		FOR u IN users
			FILTER u.email != @keep
			REMOVE u IN users
			COLLECT WITH COUNT INTO removed
			RETURN removed
	`
	cursor, err := db.Database.Query(qctx, query, &arangodb.QueryOptions{
		BindVars: map[string]interface{}{"keep": model.NormalizeEmail(keepEmail)},
	})
	if err != nil {
		return 0, err
	}
	defer cursor.Close()

	count := 0
	if cursor.HasMore() {
		if _, err := cursor.ReadDocument(qctx, &count); err != nil {
			return 0, err
		}
	}
	return count, nil
}

func listUsers(ctx context.Context, db database.DBConnection) ([]*model.User, error) {
	qctx, cancel := withQueryTimeout(ctx)
	defer cancel()

	query := `FOR u IN users SORT u.created_at ASC RETURN u`
	cursor, err := db.Database.Query(qctx, query, nil)
	if err != nil {
		return nil, err
	}
	defer cursor.Close()

	var users []*model.User
	for cursor.HasMore() {
		var user model.User
		if _, err := cursor.ReadDocument(qctx, &user); err == nil {
			users = append(users, &user)
		}
	}
	return users, nil
}
