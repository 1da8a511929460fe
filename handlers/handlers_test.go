package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"

	"github.com/gorilla/mux"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"campusnet/dto"
	"campusnet/models"
	"campusnet/repositories"
	"campusnet/services"
)

// fakeUserRepo mirrors the atomicity contract of the mongo repository.
type fakeUserRepo struct {
	mu    sync.Mutex
	users map[primitive.ObjectID]*models.User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[primitive.ObjectID]*models.User{}}
}

func (r *fakeUserRepo) FindByID(_ context.Context, id primitive.ObjectID) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[id]
	if !ok {
		return nil, repositories.ErrNotFound
	}
	copied := *user
	copied.Following = append([]primitive.ObjectID{}, user.Following...)
	copied.Followers = append([]primitive.ObjectID{}, user.Followers...)
	return &copied, nil
}

func (r *fakeUserRepo) Create(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, existing := range r.users {
		if existing.Email == user.Email {
			return repositories.ErrDuplicateEmail
		}
	}
	if user.ID.IsZero() {
		user.ID = primitive.NewObjectID()
	}
	if user.Following == nil {
		user.Following = []primitive.ObjectID{}
	}
	if user.Followers == nil {
		user.Followers = []primitive.ObjectID{}
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) Update(_ context.Context, user *models.User) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[user.ID]; !ok {
		return repositories.ErrNotFound
	}
	r.users[user.ID] = user
	return nil
}

func (r *fakeUserRepo) ResolveRefs(_ context.Context, ids []primitive.ObjectID) ([]dto.UserRef, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	refs := []dto.UserRef{}
	for _, id := range ids {
		if user, ok := r.users[id]; ok {
			refs = append(refs, dto.UserRef{ID: id, Username: user.Username})
		}
	}
	return refs, nil
}

func (r *fakeUserRepo) AddFollowing(_ context.Context, userID, targetID primitive.ObjectID) error {
	return r.edge(userID, targetID, true, true)
}

func (r *fakeUserRepo) AddFollower(_ context.Context, userID, followerID primitive.ObjectID) error {
	return r.edge(userID, followerID, false, true)
}

func (r *fakeUserRepo) RemoveFollowing(_ context.Context, userID, targetID primitive.ObjectID) error {
	return r.edge(userID, targetID, true, false)
}

func (r *fakeUserRepo) RemoveFollower(_ context.Context, userID, followerID primitive.ObjectID) error {
	return r.edge(userID, followerID, false, false)
}

func (r *fakeUserRepo) edge(userID, value primitive.ObjectID, following, add bool) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	user, ok := r.users[userID]
	if !ok {
		return repositories.ErrNotFound
	}
	list := &user.Followers
	if following {
		list = &user.Following
	}
	for i, id := range *list {
		if id == value {
			if add {
				return repositories.ErrAlreadyFollowing
			}
			*list = append((*list)[:i], (*list)[i+1:]...)
			return nil
		}
	}
	if !add {
		return repositories.ErrNotFollowing
	}
	*list = append(*list, value)
	return nil
}

// fakeNotificationRepo stores notifications in memory, newest first.
type fakeNotificationRepo struct {
	mu            sync.Mutex
	notifications []models.Notification
	failWith      error
}

func (r *fakeNotificationRepo) Create(_ context.Context, n *models.Notification) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.failWith != nil {
		return r.failWith
	}
	if n.ID.IsZero() {
		n.ID = primitive.NewObjectID()
	}
	r.notifications = append([]models.Notification{*n}, r.notifications...)
	return nil
}

func (r *fakeNotificationRepo) GetByReceiver(_ context.Context, receiverID primitive.ObjectID) ([]models.Notification, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	result := []models.Notification{}
	for _, n := range r.notifications {
		if n.ReceiverID == receiverID {
			result = append(result, n)
		}
	}
	return result, nil
}

// fakeFileStore records saves without touching disk.
type fakeFileStore struct {
	saved int
}

func (s *fakeFileStore) Save(_ multipart.File, originalName string) (string, error) {
	s.saved++
	return "uploads/stored-" + originalName, nil
}

type testEnv struct {
	router        *mux.Router
	users         *fakeUserRepo
	notifications *fakeNotificationRepo
	files         *fakeFileStore
}

func newTestEnv(t *testing.T) *testEnv {
	t.Helper()
	users := newFakeUserRepo()
	notifications := &fakeNotificationRepo{}
	files := &fakeFileStore{}

	emitter := services.NewNotificationEmitter(notifications)
	followService := services.NewFollowService(users, emitter)

	profileHandler := NewProfileHandler(users, files)
	followHandler := NewFollowHandler(followService)
	notificationHandler := NewNotificationHandler(notifications, users)

	router := mux.NewRouter()
	router.HandleFunc("/profile", profileHandler.Register).Methods("POST")
	router.HandleFunc("/profile/{userId}", profileHandler.GetProfile).Methods("GET")
	router.HandleFunc("/profile/{userId}/update", profileHandler.UpdateProfile).Methods("POST")
	router.HandleFunc("/profile/{userId}/follow", followHandler.Follow).Methods("POST")
	router.HandleFunc("/profile/{userId}/unfollow", followHandler.Unfollow).Methods("POST")
	router.HandleFunc("/profile/{userId}/notifications", notificationHandler.GetNotifications).Methods("GET")

	return &testEnv{router: router, users: users, notifications: notifications, files: files}
}

func (env *testEnv) seedUser(t *testing.T, firstName, lastName, username string) primitive.ObjectID {
	t.Helper()
	user := &models.User{
		FirstName: firstName,
		LastName:  lastName,
		Email:     username + "@example.com",
		Password:  "hashed",
		Username:  username,
		Age:       20,
		College:   "Engineering",
		YearLevel: "2nd",
	}
	if err := env.users.Create(context.Background(), user); err != nil {
		t.Fatalf("seed user: %v", err)
	}
	return user.ID
}

func (env *testEnv) do(t *testing.T, req *http.Request) *httptest.ResponseRecorder {
	t.Helper()
	rec := httptest.NewRecorder()
	env.router.ServeHTTP(rec, req)
	return rec
}

// multipartBody builds a multipart form from string fields, optionally
// with a profileImage file.
func multipartBody(t *testing.T, fields map[string]string, fileName string) (*bytes.Buffer, string) {
	t.Helper()
	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)
	for key, value := range fields {
		if err := writer.WriteField(key, value); err != nil {
			t.Fatalf("write field: %v", err)
		}
	}
	if fileName != "" {
		part, err := writer.CreateFormFile("profileImage", fileName)
		if err != nil {
			t.Fatalf("create form file: %v", err)
		}
		if _, err := part.Write([]byte("fake image bytes")); err != nil {
			t.Fatalf("write file: %v", err)
		}
	}
	if err := writer.Close(); err != nil {
		t.Fatalf("close writer: %v", err)
	}
	return body, writer.FormDataContentType()
}
