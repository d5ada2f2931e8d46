package mongo

import (
	"context"
	"time"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/domain"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

type userDoc struct {
	ID                 string    `bson:"_id"`
	Email              string    `bson:"email"`
	Name               string    `bson:"name"`
	PasswordHash       string    `bson:"password_hash"`
	Role               string    `bson:"role"`
	RegistrationNumber string    `bson:"registration_number"`
	FacultyID          string    `bson:"faculty_id"`
	PhoneNumber        string    `bson:"phone_number"`
	Department         string    `bson:"department"`
	Avatar             string    `bson:"avatar"`
	CreatedAt          time.Time `bson:"created_at"`
	UpdatedAt          time.Time `bson:"updated_at"`
}

func toUserDoc(u domain.User) userDoc {
	return userDoc{
		ID:                 u.ID,
		Email:              u.Email,
		Name:               u.Name,
		PasswordHash:       u.PasswordHash,
		Role:               string(u.Role),
		RegistrationNumber: u.RegistrationNumber,
		FacultyID:          u.FacultyID,
		PhoneNumber:        u.PhoneNumber,
		Department:         u.Department,
		Avatar:             u.Avatar,
		CreatedAt:          u.CreatedAt.UTC(),
		UpdatedAt:          u.UpdatedAt.UTC(),
	}
}

func (d userDoc) domain() domain.User {
	return domain.User{
		ID:                 d.ID,
		Email:              d.Email,
		Name:               d.Name,
		PasswordHash:       d.PasswordHash,
		Role:               domain.Role(d.Role),
		RegistrationNumber: d.RegistrationNumber,
		FacultyID:          d.FacultyID,
		PhoneNumber:        d.PhoneNumber,
		Department:         d.Department,
		Avatar:             d.Avatar,
		CreatedAt:          d.CreatedAt.UTC(),
		UpdatedAt:          d.UpdatedAt.UTC(),
	}
}

type usersRepo struct {
	users *mongo.Collection
}

func (r *usersRepo) CreateUser(ctx context.Context, u domain.User) error {
	_, err := r.users.InsertOne(ctx, toUserDoc(u))
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *usersRepo) findOne(ctx context.Context, filter bson.M) (domain.User, error) {
	var doc userDoc
	if err := r.users.FindOne(ctx, filter).Decode(&doc); err != nil {
		return domain.User{}, mapNotFound(err)
	}
	return doc.domain(), nil
}

func (r *usersRepo) GetUserByID(ctx context.Context, id string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"_id": id})
}

func (r *usersRepo) GetUserByEmail(ctx context.Context, email string) (domain.User, error) {
	return r.findOne(ctx, bson.M{"email": email})
}

func (r *usersRepo) UpdateUser(ctx context.Context, id string, patch domain.UserPatch) error {
	set := bson.M{"updated_at": now()}
	put := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	put("name", patch.Name)
	put("phone_number", patch.PhoneNumber)
	put("department", patch.Department)
	put("avatar", patch.Avatar)
	put("password_hash", patch.PasswordHash)

	res, err := r.users.UpdateOne(ctx, bson.M{"_id": id}, bson.M{"$set": set})
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
