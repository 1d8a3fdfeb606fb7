package services

import (
	"context"
	"errors"
	"sort"
	"strings"
	"time"

	"github.com/K1motho/pfol/internal/models"
	"github.com/K1motho/pfol/internal/repositories"
	"gorm.io/gorm"
)

// memStore is an in-memory stand-in for the PostgreSQL repositories so the
// services can be exercised without a database. Per-aggregate adapter types
// below expose it through the repository interfaces. Transactions are flat:
// fn runs against the same store, which is enough for these tests.
type memStore struct {
	users         map[uint]models.User
	requests      []models.FriendRequest
	friendships   []models.Friendship
	invitations   map[uint]*models.Invitation
	notifications []models.Notification
	attended      []models.AttendedEvent
	wishlist      []models.WishListEvent
	nextID        uint

	// userLoadErr, when set, fails every GetUserByID call.
	userLoadErr error
}

func newMemStore() *memStore {
	return &memStore{
		users:       make(map[uint]models.User),
		invitations: make(map[uint]*models.Invitation),
		nextID:      1,
	}
}

func (s *memStore) repos() repositories.Repositories {
	return repositories.Repositories{
		Users:          s,
		FriendRequests: &memFriendRequests{s},
		Friendships:    &memFriendships{s},
		Invitations:    &memInvitations{s},
		Notifications:  s,
		Events:         s,
	}
}

func (s *memStore) WithinTransaction(ctx context.Context, fn func(repos repositories.Repositories) error) error {
	return fn(s.repos())
}

func (s *memStore) allocID() uint {
	id := s.nextID
	s.nextID++
	return id
}

func (s *memStore) addUser(id uint, username string) {
	s.users[id] = models.User{ID: id, Username: username, Email: username + "@example.com"}
	if id >= s.nextID {
		s.nextID = id + 1
	}
}

// notificationsOf filters the store's notifications by recipient and type.
func (s *memStore) notificationsOf(recipientID uint, notificationType string) []models.Notification {
	var out []models.Notification
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && n.Type == notificationType {
			out = append(out, n)
		}
	}
	return out
}

// --- UserRepository ---

func (s *memStore) CreateUser(user *models.User) error {
	if user.ID == 0 {
		user.ID = s.allocID()
	}
	s.users[user.ID] = *user
	return nil
}

func (s *memStore) GetUserByID(id uint) (*models.User, error) {
	if s.userLoadErr != nil {
		return nil, s.userLoadErr
	}
	u, ok := s.users[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &u, nil
}

func (s *memStore) GetUserByEmail(email string) (*models.User, error) {
	for _, u := range s.users {
		if u.Email == email {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore) GetUserByUsername(username string) (*models.User, error) {
	for _, u := range s.users {
		if u.Username == username {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore) GetUserByFirebaseUID(firebaseUID string) (*models.User, error) {
	for _, u := range s.users {
		if u.FirebaseUID == firebaseUID {
			u := u
			return &u, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (s *memStore) GetUsersByIDs(ids []uint) ([]models.User, error) {
	var users []models.User
	for _, id := range ids {
		if u, ok := s.users[id]; ok {
			users = append(users, u)
		}
	}
	return users, nil
}

func (s *memStore) UpdateUser(user *models.User) error {
	s.users[user.ID] = *user
	return nil
}

func (s *memStore) SearchUsers(query string) ([]models.User, error) {
	var users []models.User
	q := strings.ToLower(query)
	for _, u := range s.users {
		if strings.Contains(strings.ToLower(u.Username), q) || strings.Contains(strings.ToLower(u.Email), q) {
			users = append(users, u)
		}
	}
	return users, nil
}

// --- FriendRequestRepository ---

type memFriendRequests struct{ s *memStore }

func (r *memFriendRequests) Create(req *models.FriendRequest) error {
	// Mirror the real pair index so a service bug surfaces here too.
	for _, existing := range r.s.requests {
		if existing.SenderID == req.SenderID && existing.ReceiverID == req.ReceiverID {
			return errors.New("duplicate key value violates unique constraint \"idx_request_pair\"")
		}
	}
	req.ID = r.s.allocID()
	req.CreatedAt = time.Now()
	r.s.requests = append(r.s.requests, *req)
	return nil
}

func (r *memFriendRequests) GetPendingBetween(userA, userB uint) (*models.FriendRequest, error) {
	for _, req := range r.s.requests {
		if req.Status != models.FriendRequestStatusPending {
			continue
		}
		if (req.SenderID == userA && req.ReceiverID == userB) || (req.SenderID == userB && req.ReceiverID == userA) {
			req := req
			return &req, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memFriendRequests) GetPendingForReceiver(receiverID uint) ([]models.FriendRequest, error) {
	var out []models.FriendRequest
	for _, req := range r.s.requests {
		if req.ReceiverID == receiverID && req.Status == models.FriendRequestStatusPending {
			out = append(out, req)
		}
	}
	return out, nil
}

func (r *memFriendRequests) DeletePending(senderID, receiverID uint) (int64, error) {
	var kept []models.FriendRequest
	var deleted int64
	for _, req := range r.s.requests {
		if req.SenderID == senderID && req.ReceiverID == receiverID && req.Status == models.FriendRequestStatusPending {
			deleted++
			continue
		}
		kept = append(kept, req)
	}
	r.s.requests = kept
	return deleted, nil
}

// --- FriendshipRepository ---

type memFriendships struct{ s *memStore }

func (r *memFriendships) Create(friendship *models.Friendship) error {
	friendship.EnsureCanonicalOrder()
	for _, existing := range r.s.friendships {
		if existing.UserID1 == friendship.UserID1 && existing.UserID2 == friendship.UserID2 {
			return errors.New("duplicate key value violates unique constraint \"idx_friendship_pair\"")
		}
	}
	friendship.ID = r.s.allocID()
	r.s.friendships = append(r.s.friendships, *friendship)
	return nil
}

func (r *memFriendships) AreFriends(userA, userB uint) (bool, error) {
	u1, u2 := models.OrderedPair(userA, userB)
	for _, f := range r.s.friendships {
		if f.UserID1 == u1 && f.UserID2 == u2 {
			return true, nil
		}
	}
	return false, nil
}

func (r *memFriendships) Delete(userA, userB uint) (int64, error) {
	u1, u2 := models.OrderedPair(userA, userB)
	var kept []models.Friendship
	var deleted int64
	for _, f := range r.s.friendships {
		if f.UserID1 == u1 && f.UserID2 == u2 {
			deleted++
			continue
		}
		kept = append(kept, f)
	}
	r.s.friendships = kept
	return deleted, nil
}

func (r *memFriendships) GetFriendIDs(userID uint) ([]uint, error) {
	var ids []uint
	for _, f := range r.s.friendships {
		if f.UserID1 == userID {
			ids = append(ids, f.UserID2)
		} else if f.UserID2 == userID {
			ids = append(ids, f.UserID1)
		}
	}
	return ids, nil
}

// --- InvitationRepository ---

type memInvitations struct{ s *memStore }

func (r *memInvitations) Create(invitation *models.Invitation) error {
	invitation.ID = r.s.allocID()
	invitation.CreatedAt = time.Now()
	stored := *invitation
	r.s.invitations[invitation.ID] = &stored
	return nil
}

func (r *memInvitations) GetByID(id uint) (*models.Invitation, error) {
	inv, ok := r.s.invitations[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	copied := *inv
	return &copied, nil
}

func (r *memInvitations) GetForUser(userID uint) ([]models.Invitation, error) {
	var out []models.Invitation
	for _, inv := range r.s.invitations {
		if inv.SenderID == userID || inv.ReceiverID == userID {
			out = append(out, *inv)
		}
	}
	return out, nil
}

func (r *memInvitations) GetPendingBetween(senderID, receiverID uint) (*models.Invitation, error) {
	for _, inv := range r.s.invitations {
		if inv.SenderID == senderID && inv.ReceiverID == receiverID && inv.Status == models.InvitationStatusPending {
			copied := *inv
			return &copied, nil
		}
	}
	return nil, gorm.ErrRecordNotFound
}

func (r *memInvitations) ResolveIfPending(id uint, status models.InvitationStatus) (int64, error) {
	inv, ok := r.s.invitations[id]
	if !ok || inv.Status != models.InvitationStatusPending {
		return 0, nil
	}
	inv.Status = status
	return 1, nil
}

// --- NotificationRepository ---

func (s *memStore) CreateNotification(notification *models.Notification) error {
	notification.ID = s.allocID()
	notification.CreatedAt = time.Now()
	s.notifications = append(s.notifications, *notification)
	return nil
}

func (s *memStore) DeleteMatching(recipientID, senderID uint, notificationType string) error {
	var kept []models.Notification
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && n.SenderID != nil && *n.SenderID == senderID && n.Type == notificationType {
			continue
		}
		kept = append(kept, n)
	}
	s.notifications = kept
	return nil
}

func (s *memStore) GetByRecipientID(recipientID uint) ([]models.Notification, error) {
	var out []models.Notification
	for i := len(s.notifications) - 1; i >= 0; i-- {
		if s.notifications[i].RecipientID == recipientID {
			out = append(out, s.notifications[i])
		}
	}
	return out, nil
}

func (s *memStore) GetUnreadCount(recipientID uint) (int64, error) {
	var count int64
	for _, n := range s.notifications {
		if n.RecipientID == recipientID && !n.IsRead {
			count++
		}
	}
	return count, nil
}

func (s *memStore) MarkAllAsRead(recipientID uint) error {
	for i := range s.notifications {
		if s.notifications[i].RecipientID == recipientID {
			s.notifications[i].IsRead = true
		}
	}
	return nil
}

// --- EventRepository ---

func (s *memStore) CreateAttended(event *models.AttendedEvent) error {
	event.ID = s.allocID()
	s.attended = append(s.attended, *event)
	return nil
}

func (s *memStore) GetAttendedByUser(userID uint) ([]models.AttendedEvent, error) {
	var out []models.AttendedEvent
	for _, e := range s.attended {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttendedAt.After(out[j].AttendedAt) })
	return out, nil
}

func (s *memStore) GetAttendedByUsers(userIDs []uint) ([]models.AttendedEvent, error) {
	members := make(map[uint]bool, len(userIDs))
	for _, id := range userIDs {
		members[id] = true
	}
	var out []models.AttendedEvent
	for _, e := range s.attended {
		if members[e.UserID] {
			out = append(out, e)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].AttendedAt.After(out[j].AttendedAt) })
	return out, nil
}

func (s *memStore) CreateWishlist(event *models.WishListEvent) error {
	event.ID = s.allocID()
	s.wishlist = append(s.wishlist, *event)
	return nil
}

func (s *memStore) GetWishlistByUser(userID uint) ([]models.WishListEvent, error) {
	var out []models.WishListEvent
	for _, e := range s.wishlist {
		if e.UserID == userID {
			out = append(out, e)
		}
	}
	return out, nil
}

func (s *memStore) DeleteWishlist(id, userID uint) (int64, error) {
	var kept []models.WishListEvent
	var deleted int64
	for _, e := range s.wishlist {
		if e.ID == id && e.UserID == userID {
			deleted++
			continue
		}
		kept = append(kept, e)
	}
	s.wishlist = kept
	return deleted, nil
}
