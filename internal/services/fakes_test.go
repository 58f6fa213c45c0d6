package services

import (
	"context"
	"errors"
	"time"

	"github.com/coffeemate/random-coffee-backend/internal/models"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
)

// In-memory repository fakes for service tests. They mirror the documented
// repository contracts, in particular mongo.ErrNoDocuments on empty lookups.

type fakeParticipantRepo struct {
	participants []*models.Participant
}

func (r *fakeParticipantRepo) Create(ctx context.Context, p *models.Participant) error {
	if p.ID.IsZero() {
		p.ID = primitive.NewObjectID()
	}
	r.participants = append(r.participants, p)
	return nil
}

func (r *fakeParticipantRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Participant, error) {
	for _, p := range r.participants {
		if p.ID == id {
			return p, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeParticipantRepo) FindByChatID(ctx context.Context, chatID string) (*models.Participant, error) {
	for _, p := range r.participants {
		if p.ChatID == chatID {
			return p, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeParticipantRepo) FindAll(ctx context.Context) ([]*models.Participant, error) {
	return append([]*models.Participant{}, r.participants...), nil
}

func (r *fakeParticipantRepo) FindActive(ctx context.Context) ([]*models.Participant, error) {
	active := []*models.Participant{}
	for _, p := range r.participants {
		if p.Active {
			active = append(active, p)
		}
	}
	return active, nil
}

func (r *fakeParticipantRepo) Update(ctx context.Context, participant *models.Participant) error {
	for i, p := range r.participants {
		if p.ID == participant.ID {
			r.participants[i] = participant
			return nil
		}
	}
	return mongo.ErrNoDocuments
}

func (r *fakeParticipantRepo) SetActive(ctx context.Context, id primitive.ObjectID, active bool) error {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	p.Active = active
	return nil
}

func (r *fakeParticipantRepo) SetAdmin(ctx context.Context, id primitive.ObjectID, admin bool) error {
	p, err := r.FindByID(ctx, id)
	if err != nil {
		return err
	}
	p.Admin = admin
	return nil
}

func (r *fakeParticipantRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.participants)), nil
}

type fakeCycleRepo struct {
	cycles []*models.Cycle
}

func (r *fakeCycleRepo) Create(ctx context.Context, cycle *models.Cycle) error {
	cycle.ID = primitive.NewObjectID()
	cycle.CreatedAt = time.Now()
	r.cycles = append(r.cycles, cycle)
	return nil
}

func (r *fakeCycleRepo) FindLatest(ctx context.Context) (*models.Cycle, error) {
	if len(r.cycles) == 0 {
		return nil, mongo.ErrNoDocuments
	}
	return r.cycles[len(r.cycles)-1], nil
}

func (r *fakeCycleRepo) FindAll(ctx context.Context) ([]*models.Cycle, error) {
	out := make([]*models.Cycle, 0, len(r.cycles))
	for i := len(r.cycles) - 1; i >= 0; i-- {
		out = append(out, r.cycles[i])
	}
	return out, nil
}

type fakePairRepo struct {
	pairs []*models.Pair
}

func (r *fakePairRepo) FindByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.Pair, error) {
	out := []*models.Pair{}
	for _, p := range r.pairs {
		if p.DrawID == drawID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePairRepo) FindByCycleID(ctx context.Context, cycleID primitive.ObjectID) ([]*models.Pair, error) {
	out := []*models.Pair{}
	for _, p := range r.pairs {
		if p.CycleID == cycleID {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *fakePairRepo) FindAll(ctx context.Context) ([]*models.Pair, error) {
	return append([]*models.Pair{}, r.pairs...), nil
}

func (r *fakePairRepo) FindLatestByParticipant(ctx context.Context, participantID primitive.ObjectID) (*models.Pair, error) {
	var latest *models.Pair
	for _, p := range r.pairs {
		if !p.Contains(participantID) {
			continue
		}
		if latest == nil || p.DrawDate.After(latest.DrawDate) {
			latest = p
		}
	}
	if latest == nil {
		return nil, mongo.ErrNoDocuments
	}
	return latest, nil
}

type fakeDrawRepo struct {
	draws     []*models.Draw
	pairRepo  *fakePairRepo
	createErr error
}

func (r *fakeDrawRepo) CreateWithPairs(ctx context.Context, draw *models.Draw, pairs []*models.Pair) error {
	if r.createErr != nil {
		return r.createErr
	}
	if len(pairs) == 0 {
		return errors.New("refusing to persist a draw with no pairs")
	}
	draw.ID = primitive.NewObjectID()
	draw.NumPairs = len(pairs)
	draw.CreatedAt = time.Now()
	r.draws = append(r.draws, draw)
	for _, pair := range pairs {
		pair.ID = primitive.NewObjectID()
		pair.DrawID = draw.ID
		pair.CycleID = draw.CycleID
		pair.DrawDate = draw.DrawDate
		r.pairRepo.pairs = append(r.pairRepo.pairs, pair)
	}
	return nil
}

func (r *fakeDrawRepo) FindByID(ctx context.Context, id primitive.ObjectID) (*models.Draw, error) {
	for _, d := range r.draws {
		if d.ID == id {
			return d, nil
		}
	}
	return nil, mongo.ErrNoDocuments
}

func (r *fakeDrawRepo) FindLatest(ctx context.Context) (*models.Draw, error) {
	var latest *models.Draw
	for _, d := range r.draws {
		if latest == nil || d.DrawDate.After(latest.DrawDate) {
			latest = d
		}
	}
	if latest == nil {
		return nil, mongo.ErrNoDocuments
	}
	return latest, nil
}

func (r *fakeDrawRepo) FindAll(ctx context.Context) ([]*models.Draw, error) {
	return append([]*models.Draw{}, r.draws...), nil
}

func (r *fakeDrawRepo) FindByCycleID(ctx context.Context, cycleID primitive.ObjectID) ([]*models.Draw, error) {
	out := []*models.Draw{}
	for _, d := range r.draws {
		if d.CycleID == cycleID {
			out = append(out, d)
		}
	}
	return out, nil
}

func (r *fakeDrawRepo) Count(ctx context.Context) (int64, error) {
	return int64(len(r.draws)), nil
}

type fakeSettingsRepo struct {
	settings *models.DrawSettings
}

func (r *fakeSettingsRepo) Get(ctx context.Context) (*models.DrawSettings, error) {
	if r.settings == nil {
		r.settings = &models.DrawSettings{CadenceDays: 7}
	}
	return r.settings, nil
}

func (r *fakeSettingsRepo) Update(ctx context.Context, settings *models.DrawSettings) error {
	r.settings = settings
	return nil
}

func (r *fakeSettingsRepo) UpdateCadence(ctx context.Context, cadenceDays int, updatedBy string) error {
	s, _ := r.Get(ctx)
	s.CadenceDays = cadenceDays
	s.UpdatedBy = updatedBy
	return nil
}

type fakeFeedbackRepo struct {
	feedback []*models.Feedback
}

func (r *fakeFeedbackRepo) Upsert(ctx context.Context, fb *models.Feedback) error {
	for i, existing := range r.feedback {
		if existing.DrawID == fb.DrawID && existing.ParticipantID == fb.ParticipantID {
			r.feedback[i] = fb
			return nil
		}
	}
	if fb.ID.IsZero() {
		fb.ID = primitive.NewObjectID()
	}
	r.feedback = append(r.feedback, fb)
	return nil
}

func (r *fakeFeedbackRepo) FindByDrawID(ctx context.Context, drawID primitive.ObjectID) ([]*models.Feedback, error) {
	out := []*models.Feedback{}
	for _, fb := range r.feedback {
		if fb.DrawID == drawID {
			out = append(out, fb)
		}
	}
	return out, nil
}

func (r *fakeFeedbackRepo) FindAll(ctx context.Context) ([]*models.Feedback, error) {
	return append([]*models.Feedback{}, r.feedback...), nil
}

// fakeMessenger is a scriptable messenger.Client. Members default to group
// members unless listed in nonMembers.
type fakeMessenger struct {
	nonMembers map[string]bool
	memberErr  error
	admins     []string
	adminsErr  error
	sent       []string // chat ids, in send order
	sendErr    error
}

func (m *fakeMessenger) SendText(ctx context.Context, chatID, text string) error {
	if m.sendErr != nil {
		return m.sendErr
	}
	m.sent = append(m.sent, chatID)
	return nil
}

func (m *fakeMessenger) IsGroupMember(ctx context.Context, groupID, chatID string) (bool, error) {
	if m.memberErr != nil {
		return false, m.memberErr
	}
	return !m.nonMembers[chatID], nil
}

func (m *fakeMessenger) ListGroupAdmins(ctx context.Context, groupID string) ([]string, error) {
	if m.adminsErr != nil {
		return nil, m.adminsErr
	}
	return m.admins, nil
}

type fakeNotifier struct {
	calls  int
	groups []Group
}

func (n *fakeNotifier) SendPairings(ctx context.Context, draw *models.Draw, groups []Group) {
	n.calls++
	n.groups = groups
}

// newParticipant builds an active non-admin roster member with cadence 1.
func newParticipant(name string) *models.Participant {
	return &models.Participant{
		ID:                  primitive.NewObjectID(),
		ChatID:              "chat-" + name,
		Name:                name,
		Active:              true,
		FrequencyIndividual: 1,
		AddedAt:             time.Now(),
	}
}
