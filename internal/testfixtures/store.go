package testfixtures

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"github.com/BruksfildServices01/meeting-scheduler/internal/audit"
	"github.com/BruksfildServices01/meeting-scheduler/internal/domain/booking"
	"github.com/BruksfildServices01/meeting-scheduler/internal/domain/meeting"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
)

// Store is an in-memory implementation of every repository. Records are copied
// on the way in and out, so callers never share memory with stored state.
type Store struct {
	mu sync.Mutex

	users       map[string]models.User
	meetings    map[string]models.Meeting
	meetingSeq  []string
	invitations map[string]models.Invitation
	invSeq      []string
	bookings    map[string]models.Booking
	auditLogs   []models.AuditLog

	// Err, when set, is returned by every write.
	Err error

	ReplaceBookingCalls int
}

func NewStore() *Store {
	return &Store{
		users:       map[string]models.User{},
		meetings:    map[string]models.Meeting{},
		invitations: map[string]models.Invitation{},
		bookings:    map[string]models.Booking{},
	}
}

// ----------------------------- users -----------------------------

func (s *Store) CreateUser(_ context.Context, u *models.User) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, existing := range s.users {
		if existing.Email == u.Email {
			return fmt.Errorf("duplicate email %s", u.Email)
		}
	}
	s.users[u.ID] = copyUser(*u)
	return nil
}

func (s *Store) FindUserByID(_ context.Context, id string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	u, ok := s.users[id]
	if !ok {
		return nil, nil
	}
	out := copyUser(u)
	return &out, nil
}

func (s *Store) FindUserByEmail(_ context.Context, email string) (*models.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = meeting.NormalizeEmail(email)
	for _, u := range s.users {
		if u.Email == email {
			out := copyUser(u)
			return &out, nil
		}
	}
	return nil, nil
}

func (s *Store) SaveAvailability(_ context.Context, userID string, days []models.AvailabilityDay) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	u, ok := s.users[userID]
	if !ok {
		return fmt.Errorf("user %s not found", userID)
	}
	u.Availability = copyDays(days)
	s.users[userID] = u
	return nil
}

// DeleteUser removes a user; used to simulate a user vanishing mid-flow.
func (s *Store) DeleteUser(id string) {
	s.mu.Lock()
	delete(s.users, id)
	s.mu.Unlock()
}

// ----------------------------- meetings -----------------------------

func (s *Store) CreateMeeting(_ context.Context, m *models.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.meetings[m.ID]; ok {
		return fmt.Errorf("duplicate meeting %s", m.ID)
	}
	s.meetings[m.ID] = copyMeeting(*m)
	s.meetingSeq = append(s.meetingSeq, m.ID)
	return nil
}

func (s *Store) GetMeeting(_ context.Context, id string) (*models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	m, ok := s.meetings[id]
	if !ok {
		return nil, nil
	}
	out := copyMeeting(m)
	return &out, nil
}

func (s *Store) UpdateMeeting(_ context.Context, m *models.Meeting) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.meetings[m.ID]; !ok {
		return fmt.Errorf("meeting %s not found", m.ID)
	}
	s.meetings[m.ID] = copyMeeting(*m)
	return nil
}

func (s *Store) DeleteMeeting(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.meetings, id)
	s.meetingSeq = without(s.meetingSeq, id)
	return nil
}

func (s *Store) ListMeetingsForUser(_ context.Context, userID string) ([]models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Meeting
	for _, id := range s.meetingSeq {
		m := s.meetings[id]
		if m.HostID == userID || hasParticipantID(m, userID) {
			out = append(out, copyMeeting(m))
		}
	}
	return out, nil
}

func (s *Store) ListCommitmentsOnDate(_ context.Context, userID, email, date, excludeID string) ([]models.Meeting, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = meeting.NormalizeEmail(email)
	var out []models.Meeting
	for _, id := range s.meetingSeq {
		m := s.meetings[id]
		if m.Date != date || m.ID == excludeID {
			continue
		}
		if m.HostID == userID || acceptedBy(m, userID, email) {
			out = append(out, copyMeeting(m))
		}
	}
	return out, nil
}

// Meetings returns every stored meeting in insertion order.
func (s *Store) Meetings() []models.Meeting {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Meeting, 0, len(s.meetingSeq))
	for _, id := range s.meetingSeq {
		out = append(out, copyMeeting(s.meetings[id]))
	}
	return out
}

// ----------------------------- invitations -----------------------------

func (s *Store) CreateInvitation(_ context.Context, inv *models.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.invitations[inv.ID] = copyInvitation(*inv)
	s.invSeq = append(s.invSeq, inv.ID)
	return nil
}

func (s *Store) GetInvitation(_ context.Context, id string) (*models.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	inv, ok := s.invitations[id]
	if !ok {
		return nil, nil
	}
	out := copyInvitation(inv)
	return &out, nil
}

func (s *Store) FindInvitation(_ context.Context, meetingID, userID, email string) (*models.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = meeting.NormalizeEmail(email)
	for _, id := range s.invSeq {
		inv := s.invitations[id]
		if inv.MeetingID != meetingID {
			continue
		}
		if (userID != "" && inv.InviteeUserID == userID) || (email != "" && inv.InviteeEmail == email) {
			out := copyInvitation(inv)
			return &out, nil
		}
	}
	return nil, nil
}

func (s *Store) UpdateInvitation(_ context.Context, inv *models.Invitation) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.invitations[inv.ID]; !ok {
		return fmt.Errorf("invitation %s not found", inv.ID)
	}
	s.invitations[inv.ID] = copyInvitation(*inv)
	return nil
}

func (s *Store) DeleteInvitation(_ context.Context, id string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	delete(s.invitations, id)
	s.invSeq = without(s.invSeq, id)
	return nil
}

func (s *Store) DeleteInvitationsForMeeting(_ context.Context, meetingID string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	for _, id := range append([]string(nil), s.invSeq...) {
		if s.invitations[id].MeetingID == meetingID {
			delete(s.invitations, id)
			s.invSeq = without(s.invSeq, id)
		}
	}
	return nil
}

func (s *Store) ListInvitationsForMeeting(_ context.Context, meetingID string) ([]models.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	var out []models.Invitation
	for _, id := range s.invSeq {
		if inv := s.invitations[id]; inv.MeetingID == meetingID {
			out = append(out, copyInvitation(inv))
		}
	}
	return out, nil
}

func (s *Store) ListPendingInvitations(_ context.Context, userID, email string) ([]models.Invitation, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	email = meeting.NormalizeEmail(email)
	var out []models.Invitation
	for _, id := range s.invSeq {
		inv := s.invitations[id]
		if inv.Status != string(meeting.ParticipantPending) {
			continue
		}
		if (userID != "" && inv.InviteeUserID == userID) || (email != "" && inv.InviteeEmail == email) {
			out = append(out, copyInvitation(inv))
		}
	}
	return out, nil
}

func (s *Store) LinkInvitations(_ context.Context, userID, email string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	email = meeting.NormalizeEmail(email)
	for id, inv := range s.invitations {
		if inv.InviteeEmail == email && inv.InviteeUserID == "" {
			inv.InviteeUserID = userID
			s.invitations[id] = inv
		}
	}
	return nil
}

// Invitations returns every stored invitation in insertion order.
func (s *Store) Invitations() []models.Invitation {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]models.Invitation, 0, len(s.invSeq))
	for _, id := range s.invSeq {
		out = append(out, copyInvitation(s.invitations[id]))
	}
	return out
}

// ----------------------------- bookings -----------------------------

func (s *Store) GetBooking(_ context.Context, userID string) (*models.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	b, ok := s.bookings[userID]
	if !ok {
		return nil, nil
	}
	out := copyBooking(b)
	return &out, nil
}

func (s *Store) ReplaceBooking(_ context.Context, b *models.Booking) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.ReplaceBookingCalls++
	if s.Err != nil {
		return s.Err
	}
	s.bookings[b.UserID] = copyBooking(*b)
	return nil
}

// ----------------------------- audit -----------------------------

func (s *Store) Log(ev audit.Event) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	row := audit.Record(ev)
	row.ID = uint(len(s.auditLogs) + 1)
	s.auditLogs = append(s.auditLogs, *row)
	return nil
}

func (s *Store) ListAuditLogs(_ context.Context, q audit.Query) ([]models.AuditLog, int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	q = q.Normalize()

	var matched []models.AuditLog
	for i := len(s.auditLogs) - 1; i >= 0; i-- {
		l := s.auditLogs[i]
		if l.UserID != q.UserID {
			continue
		}
		if q.Action != "" && l.Action != q.Action {
			continue
		}
		if q.Entity != "" && l.Entity != q.Entity {
			continue
		}
		matched = append(matched, l)
	}

	total := int64(len(matched))
	start := q.Offset()
	if start > len(matched) {
		start = len(matched)
	}
	end := start + q.Limit
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], total, nil
}

// AuditActions returns the recorded action names in order.
func (s *Store) AuditActions() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]string, 0, len(s.auditLogs))
	for _, l := range s.auditLogs {
		out = append(out, l.Action)
	}
	return out
}

// ----------------------------- helpers -----------------------------

func hasParticipantID(m models.Meeting, userID string) bool {
	for _, p := range m.Participants {
		if userID != "" && p.UserID == userID {
			return true
		}
	}
	return false
}

func acceptedBy(m models.Meeting, userID, email string) bool {
	for _, p := range m.Participants {
		if p.Status != string(meeting.ParticipantAccepted) {
			continue
		}
		if (userID != "" && p.UserID == userID) || (email != "" && p.Email == email) {
			return true
		}
	}
	return false
}

func without(ids []string, id string) []string {
	out := ids[:0:0]
	for _, v := range ids {
		if v != id {
			out = append(out, v)
		}
	}
	return out
}

func copyUser(u models.User) models.User {
	u.Availability = copyDays(u.Availability)
	return u
}

func copyDays(days []models.AvailabilityDay) []models.AvailabilityDay {
	if days == nil {
		return nil
	}
	out := make([]models.AvailabilityDay, len(days))
	for i, d := range days {
		d.Slots = append([]models.Slot{}, d.Slots...)
		out[i] = d
	}
	return out
}

func copyMeeting(m models.Meeting) models.Meeting {
	if m.Participants != nil {
		ps := make([]models.Participant, len(m.Participants))
		for i, p := range m.Participants {
			if p.ResponseAt != nil {
				at := *p.ResponseAt
				p.ResponseAt = &at
			}
			ps[i] = p
		}
		m.Participants = ps
	}
	return m
}

func copyInvitation(inv models.Invitation) models.Invitation {
	if inv.RespondedAt != nil {
		at := *inv.RespondedAt
		inv.RespondedAt = &at
	}
	return inv
}

func copyBooking(b models.Booking) models.Booking {
	b.Upcoming = append([]models.MeetingItem{}, b.Upcoming...)
	b.Pending = append([]models.MeetingItem{}, b.Pending...)
	b.Canceled = append([]models.MeetingItem{}, b.Canceled...)
	b.Past = append([]models.MeetingItem{}, b.Past...)
	return b
}

// Sorted returns a copy of ids in ascending order.
func Sorted(ids []string) []string {
	out := append([]string(nil), ids...)
	sort.Strings(out)
	return out
}

var (
	_ meeting.Repository = (*Store)(nil)
	_ booking.Repository = (*Store)(nil)
	_ audit.Sink         = (*Store)(nil)
	_ audit.Reader       = (*Store)(nil)
)
