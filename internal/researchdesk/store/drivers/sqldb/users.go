package sqldb

import (
	"context"
	"strings"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/domain"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store"
)

const userColumns = `id, email, name, password_hash, role, registration_number, faculty_id,
	phone_number, department, avatar, created_at, updated_at`

type usersRepo struct {
	q DBTX
	d Dialect
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner) (domain.User, error) {
	var (
		u    domain.User
		role string
	)
	err := row.Scan(
		&u.ID, &u.Email, &u.Name, &u.PasswordHash, &role, &u.RegistrationNumber, &u.FacultyID,
		&u.PhoneNumber, &u.Department, &u.Avatar, &u.CreatedAt, &u.UpdatedAt,
	)
	if err != nil {
		return domain.User{}, err
	}
	u.Role = domain.Role(role)
	u.CreatedAt = u.CreatedAt.UTC()
	u.UpdatedAt = u.UpdatedAt.UTC()
	return u, nil
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.q.ExecContext(ctx, r.d.Rebind(`
		INSERT INTO users (`+userColumns+`)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`),
		u.ID, u.Email, u.Name, u.PasswordHash, string(u.Role), u.RegistrationNumber, u.FacultyID,
		u.PhoneNumber, u.Department, u.Avatar, u.CreatedAt.UTC(), u.UpdatedAt.UTC(),
	)
	if err != nil && r.d.IsUniqueViolation(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, r.d.Rebind(`SELECT `+userColumns+` FROM users WHERE id = ?`), id)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	row := r.q.QueryRowContext(ctx, r.d.Rebind(`SELECT `+userColumns+` FROM users WHERE email = ?`), email)
	u, err := scanUser(row)
	if err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return u, nil
}

func (r *usersRepo) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) error {
	var (
		sets []string
		args []any
	)
	set := func(col string, v *string) {
		if v != nil {
			sets = append(sets, col+" = ?")
			args = append(args, *v)
		}
	}
	set("name", patch.Name)
	set("phone_number", patch.PhoneNumber)
	set("department", patch.Department)
	set("avatar", patch.Avatar)
	set("password_hash", patch.PasswordHash)

	sets = append(sets, "updated_at = ?")
	args = append(args, now(), id)

	res, err := r.q.ExecContext(ctx,
		r.d.Rebind(`UPDATE users SET `+strings.Join(sets, ", ")+` WHERE id = ?`), args...)
	if err != nil {
		return err
	}
	if n, err := res.RowsAffected(); err == nil && n == 0 {
		return store.ErrNotFound
	}
	return nil
}
