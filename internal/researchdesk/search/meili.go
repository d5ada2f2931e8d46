// Package search mirrors projects into Meilisearch for full-text queries.
package search

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strings"
	"sync/atomic"
	"time"

	"github.com/aussiebroadwan/researchdesk/internal/researchdesk/domain"
	meili "github.com/meilisearch/meilisearch-go"
)

// DefaultIndex is the index uid used when none is configured.
const DefaultIndex = "researchdesk_projects"

// healthInterval is how often the index is probed in the background.
const healthInterval = 10 * time.Second

// record is the indexed shape of a project. Only what search and the
// visibility filter need is sent.
type record struct {
	ID                 string   `json:"id"`
	OwnerID            string   `json:"ownerId"`
	Name               string   `json:"name"`
	Description        string   `json:"description"`
	Track              string   `json:"track"`
	Format             string   `json:"format"`
	Conference         string   `json:"conference"`
	CollaboratorNames  []string `json:"collaboratorNames"`
	CollaboratorEmails []string `json:"collaboratorEmails"`
	CreatedAt          int64    `json:"createdAt"`
}

func toRecord(p domain.Project) record {
	r := record{
		ID:                 p.ID,
		OwnerID:            p.OwnerID,
		Name:               p.Name,
		Description:        p.Description,
		Track:              p.Track,
		Format:             p.Format,
		Conference:         p.Conference,
		CollaboratorNames:  make([]string, 0, len(p.Collaborators)),
		CollaboratorEmails: make([]string, 0, len(p.Collaborators)),
		CreatedAt:          p.CreatedAt.UnixMilli(),
	}
	for _, c := range p.Collaborators {
		r.CollaboratorNames = append(r.CollaboratorNames, c.Name)
		r.CollaboratorEmails = append(r.CollaboratorEmails, strings.ToLower(c.Email))
	}
	return r
}

// visibilityFilter restricts hits to projects the caller owns or
// collaborates on.
func visibilityFilter(id domain.Identity) string {
	if id.Email == "" {
		return fmt.Sprintf("ownerId = %q", id.UserID)
	}
	return fmt.Sprintf("ownerId = %q OR collaboratorEmails = %q", id.UserID, strings.ToLower(id.Email))
}

// Meili implements the project indexer and searcher on Meilisearch. It
// tracks server health in the background so callers can fall back quickly.
type Meili struct {
	client  meili.ServiceManager
	index   string
	log     *slog.Logger
	healthy atomic.Bool
	done    chan struct{}
}

// NewMeili creates the client, configures the index when the server is up
// and starts the health monitor. An unreachable server is not an error; it
// is retried by the monitor.
func NewMeili(url, apiKey, index string, log *slog.Logger) *Meili {
	if index == "" {
		index = DefaultIndex
	}

	m := &Meili{
		client: meili.New(url, meili.WithAPIKey(apiKey)),
		index:  index,
		log:    log.With(slog.String("component", "search")),
		done:   make(chan struct{}),
	}

	if _, err := m.client.Health(); err != nil {
		m.log.Warn("meilisearch unavailable", slog.String("url", url), slog.Any("error", err))
		m.healthy.Store(false)
	} else {
		m.healthy.Store(true)
		m.configureIndex()
	}

	go m.healthLoop()
	return m
}

func (m *Meili) configureIndex() {
	if _, err := m.client.CreateIndex(&meili.IndexConfig{
		Uid:        m.index,
		PrimaryKey: "id",
	}); err != nil {
		m.log.Debug("create index (may already exist)", slog.String("index", m.index), slog.Any("error", err))
	}

	index := m.client.Index(m.index)

	filterable := []interface{}{"ownerId", "collaboratorEmails"}
	if _, err := index.UpdateFilterableAttributes(&filterable); err != nil {
		m.log.Warn("update filterable attributes", slog.Any("error", err))
	}

	searchable := []string{"name", "description", "track", "format", "conference", "collaboratorNames"}
	if _, err := index.UpdateSearchableAttributes(&searchable); err != nil {
		m.log.Warn("update searchable attributes", slog.Any("error", err))
	}
}

func (m *Meili) healthLoop() {
	ticker := time.NewTicker(healthInterval)
	defer ticker.Stop()
	for {
		select {
		case <-m.done:
			return
		case <-ticker.C:
			_, err := m.client.Health()
			wasHealthy := m.healthy.Load()
			m.healthy.Store(err == nil)
			if err == nil && !wasHealthy {
				m.log.Info("meilisearch recovered, reconfiguring index")
				m.configureIndex()
			}
		}
	}
}

// Close stops the background health monitor.
func (m *Meili) Close() {
	close(m.done)
}

// Healthy reports whether Meilisearch is reachable.
func (m *Meili) Healthy() bool {
	return m.healthy.Load()
}

// IndexProjects adds or replaces the given projects.
func (m *Meili) IndexProjects(_ context.Context, ps ...domain.Project) error {
	if len(ps) == 0 {
		return nil
	}
	records := make([]record, len(ps))
	for i, p := range ps {
		records[i] = toRecord(p)
	}
	_, err := m.client.Index(m.index).AddDocuments(records, nil)
	return err
}

// RemoveProject deletes a project from the index.
func (m *Meili) RemoveProject(_ context.Context, id string) error {
	_, err := m.client.Index(m.index).DeleteDocument(id, nil)
	return err
}

// SearchProjects returns the ids of matching projects visible to id, best
// match first.
func (m *Meili) SearchProjects(_ context.Context, query string, id domain.Identity, limit int) ([]string, error) {
	if !m.healthy.Load() {
		return nil, fmt.Errorf("meilisearch unhealthy")
	}

	resp, err := m.client.Index(m.index).Search(query, &meili.SearchRequest{
		Limit:                int64(limit),
		Filter:               visibilityFilter(id),
		AttributesToRetrieve: []string{"id"},
	})
	if err != nil {
		m.healthy.Store(false)
		return nil, fmt.Errorf("meilisearch search: %w", err)
	}

	ids := make([]string, 0, len(resp.Hits))
	for _, hit := range resp.Hits {
		raw, ok := hit["id"]
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			ids = append(ids, s)
		}
	}
	return ids, nil
}
