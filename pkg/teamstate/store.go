// Package teamstate keeps a client-side projection of one user's team:
// members, invitations in both directions, team info and details. State only
// changes after the server confirms a mutation; every mutation is followed
// by a refetch of the slices it may have touched, because accepting one
// invitation can change others server-side in ways a local patch cannot
// predict.
package teamstate

import (
	"context"
	"errors"
	"strings"
	"sync"

	"github.com/exportapp2024/cordelia-api/pkg/client"
	"github.com/exportapp2024/cordelia-api/pkg/dto"
	"github.com/google/uuid"
)

var (
	ErrNoUser     = errors.New("no user configured")
	ErrEmptyEmail = errors.New("email is required")
	ErrEmptyName  = errors.New("name is required")
	ErrNotOnTeam  = errors.New("user is not a team member")
)

// Op identifies one kind of store operation; each kind has its own in-flight
// counter instead of a shared loading flag.
type Op string

const (
	OpRefresh Op = "refresh"
	OpInvite  Op = "invite"
	OpAccept  Op = "accept"
	OpReject  Op = "reject"
	OpRemove  Op = "remove"
	OpLeave   Op = "leave"
	OpCreate  Op = "create"
	OpRename  Op = "rename"
)

// Snapshot is a point-in-time copy of the store's state. Slices are copied
// on read; callers never observe interior mutation.
type Snapshot struct {
	Members            []dto.TeamMember
	PendingInvitations []dto.TeamInvitation
	SentInvitations    []dto.TeamInvitation
	Info               dto.TeamInfo
	Details            *dto.TeamDetails
	Role               Role
	LastError          string
}

func (s Snapshot) HasCalendarAccess() bool {
	return s.Role != RoleNone
}

// RemovableMembers filters out owner rows; the owner row never gets a remove
// control regardless of who is looking.
func (s Snapshot) RemovableMembers() []dto.TeamMember {
	out := []dto.TeamMember{}
	for _, m := range s.Members {
		if m.Role != "owner" {
			out = append(out, m)
		}
	}
	return out
}

// Store owns all team-related client state for one user id at a time. All
// reads go through it; there is no second synchronization path.
type Store struct {
	api *client.Client

	// actionMu serializes mutations end to end, refetches included, so two
	// rapid mutations cannot interleave their refetches and let the staler
	// one win.
	actionMu sync.Mutex

	mu       sync.Mutex
	userID   uuid.UUID
	email    string
	gen      uint64
	snap     Snapshot
	inflight map[Op]int
}

func New(api *client.Client) *Store {
	return &Store{
		api:      api,
		inflight: make(map[Op]int),
	}
}

// SetUser switches the store to a new user. The generation bump makes any
// in-flight fetch for the previous user discard its result on arrival; the
// requests themselves are not aborted.
func (s *Store) SetUser(userID uuid.UUID, email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.userID = userID
	s.email = email
	s.gen++
	s.snap = Snapshot{}
}

func (s *Store) Snapshot() Snapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return copySnapshot(s.snap)
}

func (s *Store) InFlight(op Op) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.inflight[op] > 0
}

func (s *Store) Busy() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, n := range s.inflight {
		if n > 0 {
			return true
		}
	}
	return false
}

// Refresh fetches every slice. Fetches run concurrently and record their
// results independently: a failed slice leaves the others' data intact and
// its message in LastError. No fetch is issued without a user id.
func (s *Store) Refresh(ctx context.Context) {
	uid, email, gen, ok := s.session()
	if !ok {
		return
	}

	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	s.begin(OpRefresh)
	defer s.end(OpRefresh)
	s.clearError(gen)

	var wg sync.WaitGroup
	for _, fetch := range []func(){
		func() { s.fetchMembers(ctx, uid, gen) },
		func() { s.fetchPending(ctx, uid, email, gen) },
		func() { s.fetchSent(ctx, uid, gen) },
		func() { s.fetchInfo(ctx, uid, gen) },
		func() { s.fetchDetails(ctx, uid, gen) },
	} {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fetch()
		}()
	}
	wg.Wait()

	s.recomputeRole(gen)
}

// Invite sends an invitation from the current user's team, then refetches
// the member list and the outbound invitations.
func (s *Store) Invite(ctx context.Context, email string) (*dto.TeamInvitation, error) {
	if strings.TrimSpace(email) == "" {
		return nil, ErrEmptyEmail
	}
	uid, _, gen, ok := s.session()
	if !ok {
		return nil, ErrNoUser
	}

	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	s.begin(OpInvite)
	defer s.end(OpInvite)
	s.clearError(gen)

	invitation, err := s.api.Invite(ctx, uid, email)
	if err != nil {
		s.setError(gen, err)
		return nil, err
	}

	s.refetch(
		func() { s.fetchMembers(ctx, uid, gen) },
		func() { s.fetchSent(ctx, uid, gen) },
	)
	s.recomputeRole(gen)
	return invitation, nil
}

// Accept resolves a received invitation, then refetches everything the
// acceptance may have touched: pending invitations, team info, the member
// list and the team details.
func (s *Store) Accept(ctx context.Context, invitationID uuid.UUID) error {
	uid, email, gen, ok := s.session()
	if !ok {
		return ErrNoUser
	}

	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	s.begin(OpAccept)
	defer s.end(OpAccept)
	s.clearError(gen)

	if _, err := s.api.AcceptInvitation(ctx, invitationID, uid); err != nil {
		s.setError(gen, err)
		return err
	}

	s.refetch(
		func() { s.fetchPending(ctx, uid, email, gen) },
		func() { s.fetchInfo(ctx, uid, gen) },
		func() { s.fetchMembers(ctx, uid, gen) },
		func() { s.fetchDetails(ctx, uid, gen) },
	)
	s.recomputeRole(gen)
	return nil
}

func (s *Store) Reject(ctx context.Context, invitationID uuid.UUID) error {
	uid, email, gen, ok := s.session()
	if !ok {
		return ErrNoUser
	}

	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	s.begin(OpReject)
	defer s.end(OpReject)
	s.clearError(gen)

	if err := s.api.RejectInvitation(ctx, invitationID, uid); err != nil {
		s.setError(gen, err)
		return err
	}

	s.refetch(func() { s.fetchPending(ctx, uid, email, gen) })
	s.recomputeRole(gen)
	return nil
}

func (s *Store) Remove(ctx context.Context, memberID uuid.UUID) error {
	uid, _, gen, ok := s.session()
	if !ok {
		return ErrNoUser
	}

	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	s.begin(OpRemove)
	defer s.end(OpRemove)
	s.clearError(gen)

	if err := s.api.RemoveMember(ctx, memberID, uid); err != nil {
		s.setError(gen, err)
		return err
	}

	s.refetch(func() { s.fetchMembers(ctx, uid, gen) })
	s.recomputeRole(gen)
	return nil
}

// Leave removes the current user's own member row. The row id is resolved
// against the server rather than the snapshot so a stale member list cannot
// target the wrong row. Owners cannot leave their own team.
func (s *Store) Leave(ctx context.Context) error {
	uid, _, gen, ok := s.session()
	if !ok {
		return ErrNoUser
	}

	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	s.begin(OpLeave)
	defer s.end(OpLeave)
	s.clearError(gen)

	members, err := s.api.TeamMembers(ctx, uid)
	if err != nil {
		s.setError(gen, err)
		return err
	}

	var rowID uuid.UUID
	for _, m := range members {
		if m.UserID == uid {
			rowID = m.ID
			break
		}
	}
	if rowID == uuid.Nil {
		s.setError(gen, ErrNotOnTeam)
		return ErrNotOnTeam
	}

	if err := s.api.RemoveMember(ctx, rowID, uid); err != nil {
		s.setError(gen, err)
		return err
	}

	s.refetch(
		func() { s.fetchMembers(ctx, uid, gen) },
		func() { s.fetchInfo(ctx, uid, gen) },
		func() { s.fetchDetails(ctx, uid, gen) },
	)
	s.recomputeRole(gen)
	return nil
}

// CreateTeam makes the current user a team owner. An empty name travels as
// JSON null and the server picks the default.
func (s *Store) CreateTeam(ctx context.Context, name string) (*dto.TeamSummary, error) {
	uid, _, gen, ok := s.session()
	if !ok {
		return nil, ErrNoUser
	}

	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	s.begin(OpCreate)
	defer s.end(OpCreate)
	s.clearError(gen)

	team, err := s.api.CreateTeam(ctx, uid, name)
	if err != nil {
		s.setError(gen, err)
		return nil, err
	}

	s.refetch(
		func() { s.fetchMembers(ctx, uid, gen) },
		func() { s.fetchInfo(ctx, uid, gen) },
		func() { s.fetchDetails(ctx, uid, gen) },
	)
	s.recomputeRole(gen)
	return team, nil
}

func (s *Store) Rename(ctx context.Context, name string) (*dto.TeamSummary, error) {
	uid, _, gen, ok := s.session()
	if !ok {
		return nil, ErrNoUser
	}

	s.actionMu.Lock()
	defer s.actionMu.Unlock()
	s.begin(OpRename)
	defer s.end(OpRename)
	s.clearError(gen)

	team, err := s.api.UpdateTeamName(ctx, uid, name)
	if err != nil {
		s.setError(gen, err)
		return nil, err
	}

	s.refetch(
		func() { s.fetchMembers(ctx, uid, gen) },
		func() { s.fetchInfo(ctx, uid, gen) },
		func() { s.fetchDetails(ctx, uid, gen) },
	)
	s.recomputeRole(gen)
	return team, nil
}

// DisconnectCalendar clears the shared-calendar state locally. No server
// call is involved; outbound invitations are deliberately kept.
func (s *Store) DisconnectCalendar() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap.Members = nil
	s.snap.PendingInvitations = nil
	s.snap.Info = dto.TeamInfo{}
	s.snap.Details = nil
	s.snap.Role = RoleNone
}

func (s *Store) session() (uuid.UUID, string, uint64, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userID == uuid.Nil {
		return uuid.Nil, "", 0, false
	}
	return s.userID, s.email, s.gen, true
}

func (s *Store) begin(op Op) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight[op]++
}

func (s *Store) end(op Op) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.inflight[op]--
}

// apply runs fn against the snapshot unless the result belongs to a stale
// generation, in which case it is dropped.
func (s *Store) apply(gen uint64, fn func(*Snapshot)) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	fn(&s.snap)
}

func (s *Store) setError(gen uint64, err error) {
	s.apply(gen, func(snap *Snapshot) { snap.LastError = err.Error() })
}

func (s *Store) clearError(gen uint64) {
	s.apply(gen, func(snap *Snapshot) { snap.LastError = "" })
}

func (s *Store) recomputeRole(gen uint64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if gen != s.gen {
		return
	}
	s.snap.Role = DeriveRole(s.snap.Members, s.snap.Info, s.userID)
}

// refetch runs the slice fetches concurrently and waits for all of them;
// the caller's mutation has already completed by the time it runs.
func (s *Store) refetch(fetches ...func()) {
	var wg sync.WaitGroup
	for _, fetch := range fetches {
		wg.Add(1)
		go func() {
			defer wg.Done()
			fetch()
		}()
	}
	wg.Wait()
}

func (s *Store) fetchMembers(ctx context.Context, uid uuid.UUID, gen uint64) {
	members, err := s.api.TeamMembers(ctx, uid)
	if err != nil {
		s.setError(gen, err)
		return
	}
	s.apply(gen, func(snap *Snapshot) { snap.Members = members })
}

func (s *Store) fetchPending(ctx context.Context, uid uuid.UUID, email string, gen uint64) {
	invitations, err := s.api.PendingInvitations(ctx, uid, email)
	if err != nil {
		s.setError(gen, err)
		return
	}
	s.apply(gen, func(snap *Snapshot) { snap.PendingInvitations = invitations })
}

func (s *Store) fetchSent(ctx context.Context, uid uuid.UUID, gen uint64) {
	invitations, err := s.api.SentInvitations(ctx, uid)
	if err != nil {
		s.setError(gen, err)
		return
	}
	s.apply(gen, func(snap *Snapshot) { snap.SentInvitations = invitations })
}

func (s *Store) fetchInfo(ctx context.Context, uid uuid.UUID, gen uint64) {
	info, err := s.api.TeamInfo(ctx, uid)
	if err != nil {
		s.setError(gen, err)
		return
	}
	s.apply(gen, func(snap *Snapshot) { snap.Info = info })
}

func (s *Store) fetchDetails(ctx context.Context, uid uuid.UUID, gen uint64) {
	details, err := s.api.TeamDetails(ctx, uid)
	if err != nil {
		s.setError(gen, err)
		return
	}
	s.apply(gen, func(snap *Snapshot) { snap.Details = details })
}

func copySnapshot(in Snapshot) Snapshot {
	out := in
	out.Members = append([]dto.TeamMember(nil), in.Members...)
	out.PendingInvitations = append([]dto.TeamInvitation(nil), in.PendingInvitations...)
	out.SentInvitations = append([]dto.TeamInvitation(nil), in.SentInvitations...)
	out.Info.OwnedTeams = append([]dto.TeamSummary(nil), in.Info.OwnedTeams...)
	out.Info.MemberTeams = append([]dto.TeamSummary(nil), in.Info.MemberTeams...)
	if in.Details != nil {
		details := *in.Details
		out.Details = &details
	}
	return out
}
