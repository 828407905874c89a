package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math/rand"
	"time"

	"github.com/Imdachu/imf-gadget/models"
	"gorm.io/gorm"
)

// codenameAdjectives feed generated gadget names ("The Kraken")
var codenameAdjectives = []string{
	"Nightingale", "Kraken", "Phantom", "Viper", "Falcon",
	"Specter", "Shadow", "Wraith", "Oracle", "Sentinel",
}

// CodenameAdjectives returns a copy of the adjectives used for codenames
func CodenameAdjectives() []string {
	out := make([]string, len(codenameAdjectives))
	copy(out, codenameAdjectives)
	return out
}

// ActionKind tells whether an action changed persisted state
type ActionKind string

const (
	ActionCommitted ActionKind = "committed"
	ActionSimulated ActionKind = "simulated"
)

// GadgetView is a gadget as presented by List. The probability is
// computed per response and never stored.
type GadgetView struct {
	models.Gadget
	MissionSuccessProbability string `json:"missionSuccessProbability"`
}

// GadgetInput carries optional fields for Create and Update. A nil field
// was not provided.
type GadgetInput struct {
	Name   *string              `json:"name"`
	Status *models.GadgetStatus `json:"status"`
}

// SelfDestructResult is returned by SelfDestruct. Kind is always
// ActionSimulated: the gadget record is left untouched.
type SelfDestructResult struct {
	Kind             ActionKind     `json:"-"`
	Gadget           *models.Gadget `json:"-"`
	ConfirmationCode string         `json:"confirmationCode"`
	Message          string         `json:"message"`
}

// GadgetManager owns gadget creation defaults, status filtering, update
// and decommission transitions, and the self-destruct simulation
type GadgetManager struct {
	db     *gorm.DB
	events EventPublisher
	now    func() time.Time
	intn   func(n int) int
}

// NewGadgetManager creates a gadget manager. events may be nil.
func NewGadgetManager(db *gorm.DB, events EventPublisher) *GadgetManager {
	return &GadgetManager{
		db:     db,
		events: events,
		now:    time.Now,
		intn:   rand.Intn,
	}
}

// GenerateCodename picks "The {Adjective}" uniformly at random
func (m *GadgetManager) GenerateCodename() string {
	return "The " + codenameAdjectives[m.intn(len(codenameAdjectives))]
}

// missionSuccessProbability returns "N% success probability", N in [50,100]
func (m *GadgetManager) missionSuccessProbability() string {
	return fmt.Sprintf("%d%% success probability", m.intn(51)+50)
}

// confirmationCode returns a 6-digit code in [100000,999999]
func (m *GadgetManager) confirmationCode() string {
	return fmt.Sprintf("%d", 100000+m.intn(900000))
}

// List returns all gadgets, or those whose status equals statusFilter
// exactly when it is non-empty
func (m *GadgetManager) List(ctx context.Context, statusFilter string) ([]GadgetView, error) {
	query := m.db.WithContext(ctx).Model(&models.Gadget{})
	if statusFilter != "" {
		query = query.Where("status = ?", statusFilter)
	}

	var gadgets []models.Gadget
	if err := query.Order("created_at ASC").Find(&gadgets).Error; err != nil {
		return nil, fmt.Errorf("%w: listing gadgets: %w", ErrInternal, err)
	}

	views := make([]GadgetView, len(gadgets))
	for i, g := range gadgets {
		views[i] = GadgetView{
			Gadget:                    g,
			MissionSuccessProbability: m.missionSuccessProbability(),
		}
	}
	return views, nil
}

// Create persists a new gadget. A missing or empty name gets a codename,
// a missing status defaults to Available.
func (m *GadgetManager) Create(ctx context.Context, in GadgetInput) (*models.Gadget, error) {
	gadget := models.Gadget{Status: models.GadgetAvailable}

	if in.Name != nil && *in.Name != "" {
		gadget.Name = *in.Name
	} else {
		gadget.Name = m.GenerateCodename()
	}

	if in.Status != nil && *in.Status != "" {
		if !in.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *in.Status)
		}
		gadget.Status = *in.Status
	}
	if gadget.Status == models.GadgetDecommissioned {
		stamp := m.now()
		gadget.DecommissionedAt = &stamp
	}

	if err := m.db.WithContext(ctx).Create(&gadget).Error; err != nil {
		return nil, fmt.Errorf("%w: creating gadget: %w", ErrInternal, err)
	}

	publish(m.events, newGadgetEvent(SubjectGadgetCreated, &gadget, actorFrom(ctx), m.now()))
	return &gadget, nil
}

// Update applies the provided fields. Moving to Decommissioned stamps
// decommissionedAt if it is not set yet; moving away clears it.
func (m *GadgetManager) Update(ctx context.Context, id string, in GadgetInput) (*models.Gadget, error) {
	gadget, err := m.find(ctx, id)
	if err != nil {
		return nil, err
	}

	updates := map[string]any{}
	if in.Name != nil {
		if *in.Name == "" {
			return nil, fmt.Errorf("%w: name must not be empty", ErrValidation)
		}
		updates["name"] = *in.Name
	}
	if in.Status != nil {
		if !in.Status.Valid() {
			return nil, fmt.Errorf("%w: unknown status %q", ErrValidation, *in.Status)
		}
		updates["status"] = *in.Status
		switch {
		case *in.Status != models.GadgetDecommissioned:
			updates["decommissioned_at"] = nil
		case gadget.DecommissionedAt == nil:
			updates["decommissioned_at"] = m.now()
		}
	}

	if len(updates) == 0 {
		return gadget, nil
	}

	if err := m.db.WithContext(ctx).Model(&models.Gadget{}).Where("id = ?", id).Updates(updates).Error; err != nil {
		return nil, fmt.Errorf("%w: updating gadget %s: %w", ErrInternal, id, err)
	}

	gadget, err = m.find(ctx, id)
	if err != nil {
		return nil, err
	}

	publish(m.events, newGadgetEvent(SubjectGadgetUpdated, gadget, actorFrom(ctx), m.now()))
	return gadget, nil
}

// Decommission sets status Decommissioned and stamps the current time in
// a single statement. Repeating it moves the timestamp forward.
func (m *GadgetManager) Decommission(ctx context.Context, id string) (*models.Gadget, error) {
	result := m.db.WithContext(ctx).Model(&models.Gadget{}).Where("id = ?", id).Updates(map[string]any{
		"status":            models.GadgetDecommissioned,
		"decommissioned_at": m.now(),
	})
	if result.Error != nil {
		return nil, fmt.Errorf("%w: decommissioning gadget %s: %w", ErrInternal, id, result.Error)
	}
	if result.RowsAffected == 0 {
		return nil, fmt.Errorf("%w: gadget %s", ErrNotFound, id)
	}

	gadget, err := m.find(ctx, id)
	if err != nil {
		return nil, err
	}

	publish(m.events, newGadgetEvent(SubjectGadgetDecommissioned, gadget, actorFrom(ctx), m.now()))
	return gadget, nil
}

// SelfDestruct simulates a self-destruct sequence. It issues a
// confirmation code and leaves the stored gadget unchanged.
func (m *GadgetManager) SelfDestruct(ctx context.Context, id string) (*SelfDestructResult, error) {
	log.Printf("💣 [SELF_DESTRUCT] Self-destruct requested for gadget %s", id)

	gadget, err := m.find(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			log.Printf("⚠️ [SELF_DESTRUCT] Gadget not found: %s", id)
		} else {
			log.Printf("❌ [SELF_DESTRUCT] Lookup failed for gadget %s: %v", id, err)
		}
		return nil, err
	}

	code := m.confirmationCode()
	log.Printf("💣 [SELF_DESTRUCT] Sequence initiated for gadget %q (code %s)", gadget.Name, code)

	ev := newGadgetEvent(SubjectGadgetSelfDestruct, gadget, actorFrom(ctx), m.now())
	ev.ConfirmationCode = code
	publish(m.events, ev)

	return &SelfDestructResult{
		Kind:             ActionSimulated,
		Gadget:           gadget,
		ConfirmationCode: code,
		Message:          fmt.Sprintf("Self-destruct sequence initiated for gadget '%s'.", gadget.Name),
	}, nil
}

func (m *GadgetManager) find(ctx context.Context, id string) (*models.Gadget, error) {
	var gadget models.Gadget
	if err := m.db.WithContext(ctx).First(&gadget, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, fmt.Errorf("%w: gadget %s", ErrNotFound, id)
		}
		return nil, fmt.Errorf("%w: loading gadget %s: %w", ErrInternal, id, err)
	}
	return &gadget, nil
}
