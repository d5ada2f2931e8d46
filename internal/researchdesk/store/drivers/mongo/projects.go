package mongo

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/domain"
	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/store"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

type collaboratorDoc struct {
	Name               string `bson:"name"`
	Email              string `bson:"email"`
	Role               string `bson:"role"`
	RegistrationNumber string `bson:"registration_number,omitempty"`
	Organization       string `bson:"organization,omitempty"`
	Country            string `bson:"country,omitempty"`
}

type projectDoc struct {
	ID            string            `bson:"_id"`
	OwnerID       string            `bson:"owner_id"`
	Name          string            `bson:"name"`
	Description   string            `bson:"description"`
	Track         string            `bson:"track"`
	Format        string            `bson:"format"`
	Conference    string            `bson:"conference"`
	Deadline      *time.Time        `bson:"deadline,omitempty"`
	PaperURL      string            `bson:"paper_url"`
	Collaborators []collaboratorDoc `bson:"collaborators"`
	Status        string            `bson:"status"`
	ResearchStep  string            `bson:"research_step"`
	CreatedAt     time.Time         `bson:"created_at"`
	UpdatedAt     time.Time         `bson:"updated_at"`

	// CollaboratorEmails is the lowercase copy the visibility query matches on.
	CollaboratorEmails []string `bson:"collaborator_emails"`
}

func toCollaboratorDocs(cs []domain.Collaborator) ([]collaboratorDoc, []string) {
	docs := make([]collaboratorDoc, len(cs))
	emails := make([]string, len(cs))
	for i, c := range cs {
		docs[i] = collaboratorDoc{
			Name:               c.Name,
			Email:              c.Email,
			Role:               string(c.Role),
			RegistrationNumber: c.RegistrationNumber,
			Organization:       c.Organization,
			Country:            c.Country,
		}
		emails[i] = strings.ToLower(c.Email)
	}
	return docs, emails
}

func toProjectDoc(p domain.Project) projectDoc {
	collaborators, emails := toCollaboratorDocs(p.Collaborators)

	var deadline *time.Time
	if p.Deadline != nil {
		d := p.Deadline.UTC()
		deadline = &d
	}

	return projectDoc{
		ID:                 p.ID,
		OwnerID:            p.OwnerID,
		Name:               p.Name,
		Description:        p.Description,
		Track:              p.Track,
		Format:             p.Format,
		Conference:         p.Conference,
		Deadline:           deadline,
		PaperURL:           p.PaperURL,
		Collaborators:      collaborators,
		Status:             string(p.Status),
		ResearchStep:       string(p.ResearchStep),
		CreatedAt:          p.CreatedAt.UTC(),
		UpdatedAt:          p.UpdatedAt.UTC(),
		CollaboratorEmails: emails,
	}
}

func (d projectDoc) domain() domain.Project {
	p := domain.Project{
		ID:           d.ID,
		OwnerID:      d.OwnerID,
		Name:         d.Name,
		Description:  d.Description,
		Track:        d.Track,
		Format:       d.Format,
		Conference:   d.Conference,
		PaperURL:     d.PaperURL,
		Status:       domain.Status(d.Status),
		ResearchStep: domain.ResearchStep(d.ResearchStep),
		CreatedAt:    d.CreatedAt.UTC(),
		UpdatedAt:    d.UpdatedAt.UTC(),
	}
	if d.Deadline != nil {
		t := d.Deadline.UTC()
		p.Deadline = &t
	}
	for _, c := range d.Collaborators {
		p.Collaborators = append(p.Collaborators, domain.Collaborator{
			Name:               c.Name,
			Email:              c.Email,
			Role:               domain.Role(c.Role),
			RegistrationNumber: c.RegistrationNumber,
			Organization:       c.Organization,
			Country:            c.Country,
		})
	}
	return p
}

type projectsRepo struct {
	projects *mongo.Collection
	users    *mongo.Collection
}

func (r *projectsRepo) CreateProject(ctx context.Context, p domain.Project) error {
	_, err := r.projects.InsertOne(ctx, toProjectDoc(p))
	if mongo.IsDuplicateKeyError(err) {
		return store.ErrAlreadyExists
	}
	return err
}

func (r *projectsRepo) GetProject(ctx context.Context, id string) (domain.Project, error) {
	var doc projectDoc
	if err := r.projects.FindOne(ctx, bson.M{"_id": id}).Decode(&doc); err != nil {
		return domain.Project{}, mapNotFound(err)
	}
	p := doc.domain()

	var owner userDoc
	err := r.users.FindOne(ctx, bson.M{"_id": p.OwnerID},
		options.FindOne().SetProjection(bson.M{"name": 1, "email": 1})).Decode(&owner)
	switch {
	case err == nil:
		p.Owner = &domain.UserRef{ID: p.OwnerID, Name: owner.Name, Email: owner.Email}
	case !errors.Is(err, mongo.ErrNoDocuments):
		return domain.Project{}, err
	}
	return p, nil
}

var newestFirst = bson.D{{Key: "created_at", Value: -1}, {Key: "_id", Value: -1}}

func (r *projectsRepo) find(ctx context.Context, filter bson.M) ([]domain.Project, error) {
	cur, err := r.projects.Find(ctx, filter, options.Find().SetSort(newestFirst))
	if err != nil {
		return nil, err
	}
	defer cur.Close(ctx)

	var out []domain.Project
	for cur.Next(ctx) {
		var doc projectDoc
		if err := cur.Decode(&doc); err != nil {
			return nil, err
		}
		out = append(out, doc.domain())
	}
	return out, cur.Err()
}

func (r *projectsRepo) ListVisible(ctx context.Context, userID, email string) ([]domain.Project, error) {
	if email == "" {
		return r.find(ctx, bson.M{"owner_id": userID})
	}
	return r.find(ctx, bson.M{"$or": bson.A{
		bson.M{"owner_id": userID},
		bson.M{"collaborator_emails": strings.ToLower(email)},
	}})
}

func (r *projectsRepo) ListAll(ctx context.Context) ([]domain.Project, error) {
	return r.find(ctx, bson.M{})
}

func (r *projectsRepo) UpdateProject(ctx context.Context, id string, patch domain.ProjectPatch) error {
	set := bson.M{"updated_at": now()}
	put := func(key string, v *string) {
		if v != nil {
			set[key] = *v
		}
	}
	put("name", patch.Name)
	put("description", patch.Description)
	put("track", patch.Track)
	put("format", patch.Format)
	put("conference", patch.Conference)
	put("paper_url", patch.PaperURL)
	if patch.Status != nil {
		set["status"] = string(*patch.Status)
	}
	if patch.ResearchStep != nil {
		set["research_step"] = string(*patch.ResearchStep)
	}
	if patch.Collaborators != nil {
		docs, emails := toCollaboratorDocs(*patch.Collaborators)
		set["collaborators"] = docs
		set["collaborator_emails"] = emails
	}

	update := bson.M{}
	switch {
	case patch.Deadline != nil:
		set["deadline"] = patch.Deadline.UTC()
	case patch.ClearDeadline:
		update["$unset"] = bson.M{"deadline": ""}
	}
	update["$set"] = set

	res, err := r.projects.UpdateOne(ctx, bson.M{"_id": id}, update)
	if err != nil {
		return err
	}
	if res.MatchedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}

func (r *projectsRepo) DeleteProject(ctx context.Context, id string) error {
	res, err := r.projects.DeleteOne(ctx, bson.M{"_id": id})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return store.ErrNotFound
	}
	return nil
}
