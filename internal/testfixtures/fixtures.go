package testfixtures

import (
	"context"
	"fmt"
	"sync/atomic"

	"github.com/BruksfildServices01/meeting-scheduler/internal/domain/availability"
	"github.com/BruksfildServices01/meeting-scheduler/internal/models"
)

// SequentialIDs returns a generator producing prefix-001, prefix-002, ...
func SequentialIDs(prefix string) func() string {
	var n uint64
	return func() string {
		return fmt.Sprintf("%s-%03d", prefix, atomic.AddUint64(&n, 1))
	}
}

// AddUser stores a user with the default weekly availability.
func (s *Store) AddUser(id, email string) models.User {
	u := models.User{
		ID:           id,
		Name:         id,
		Email:        email,
		PasswordHash: "hash-" + id,
		Availability: availability.Default(),
	}
	if err := s.CreateUser(context.Background(), &u); err != nil {
		panic(err)
	}
	return u
}

// AddMeeting stores m as-is, bypassing the use cases.
func (s *Store) AddMeeting(m models.Meeting) models.Meeting {
	if m.Status == "" {
		m.Status = "scheduled"
	}
	if err := s.CreateMeeting(context.Background(), &m); err != nil {
		panic(err)
	}
	return m
}

// AddInvitation stores inv as-is, bypassing the use cases.
func (s *Store) AddInvitation(inv models.Invitation) models.Invitation {
	if inv.Status == "" {
		inv.Status = "pending"
	}
	if err := s.CreateInvitation(context.Background(), &inv); err != nil {
		panic(err)
	}
	return inv
}
