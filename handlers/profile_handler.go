package handlers

import (
	"net/http"
	"strconv"

	"github.com/gorilla/mux"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"campusnet/dto"
	"campusnet/models"
	"campusnet/monitoring"
	"campusnet/repositories"
	"campusnet/storage"
)

const maxUploadSize = 10 << 20 // 10 MiB

// ProfileHandler serves registration, profile retrieval and updates.
type ProfileHandler struct {
	Users repositories.UserRepository
	Files storage.FileStore
}

// NewProfileHandler initializes a new ProfileHandler.
func NewProfileHandler(users repositories.UserRepository, files storage.FileStore) *ProfileHandler {
	return &ProfileHandler{Users: users, Files: files}
}

// Register creates a new user from a multipart form with an optional
// profileImage file. The password is stored as a bcrypt hash and never
// returned.
func (h *ProfileHandler) Register(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, KindValidation, "Invalid multipart form")
		monitoring.RegisterFailure.WithLabelValues("bad_form").Inc()
		return
	}

	required := []string{"firstName", "lastName", "email", "password", "username", "age", "college", "yearLevel"}
	for _, field := range required {
		if r.FormValue(field) == "" {
			writeError(w, http.StatusBadRequest, KindValidation, field+" is required")
			monitoring.RegisterFailure.WithLabelValues("missing_field").Inc()
			return
		}
	}

	age, err := strconv.Atoi(r.FormValue("age"))
	if err != nil {
		writeError(w, http.StatusBadRequest, KindValidation, "age must be a number")
		monitoring.RegisterFailure.WithLabelValues("bad_age").Inc()
		return
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(r.FormValue("password")), bcrypt.DefaultCost)
	if err != nil {
		logrus.WithError(err).Error("Failed to hash password")
		writeError(w, http.StatusServiceUnavailable, KindUnavailable, "Temporarily unavailable, please retry")
		return
	}

	user := &models.User{
		FirstName:            r.FormValue("firstName"),
		LastName:             r.FormValue("lastName"),
		Email:                r.FormValue("email"),
		Password:             string(hashedPassword),
		Username:             r.FormValue("username"),
		Age:                  age,
		College:              r.FormValue("college"),
		YearLevel:            r.FormValue("yearLevel"),
		CustomInterests:      formValues(r, "customInterests"),
		CategorizedInterests: formValues(r, "categorizedInterests"),
		Role:                 "student",
	}

	path, ok := h.saveUpload(w, r)
	if !ok {
		return // saveUpload already wrote the error
	}
	if path != nil {
		user.ProfileImage = path
	}

	if err := h.Users.Create(r.Context(), user); err != nil {
		writeServiceError(w, err)
		monitoring.RegisterFailure.WithLabelValues("store").Inc()
		return
	}

	logrus.WithFields(logrus.Fields{"user": user.ID.Hex(), "username": user.Username}).Info("User registered")
	monitoring.RegisterSuccess.Inc()
	writeJSON(w, http.StatusCreated, user)
}

// GetProfile returns the user with following/followers resolved to
// {id, username} refs. The credential hash is never included.
func (h *ProfileHandler) GetProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(mux.Vars(r)["userId"])
	if !ok {
		writeError(w, http.StatusBadRequest, KindValidation, "Invalid user id")
		return
	}

	user, err := h.Users.FindByID(r.Context(), id)
	if err != nil {
		if repositories.IsNotFound(err) {
			writeError(w, http.StatusNotFound, KindNotFound, "User not found")
			return
		}
		writeServiceError(w, err)
		return
	}

	following, err := h.Users.ResolveRefs(r.Context(), user.Following)
	if err != nil {
		writeServiceError(w, err)
		return
	}
	followers, err := h.Users.ResolveRefs(r.Context(), user.Followers)
	if err != nil {
		writeServiceError(w, err)
		return
	}

	writeJSON(w, http.StatusOK, dto.NewProfileResponse(user, following, followers))
}

// UpdateProfile applies a partial update: fields absent from the form
// keep their prior value, and a present-but-empty field clears it.
func (h *ProfileHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	id, ok := parseObjectID(mux.Vars(r)["userId"])
	if !ok {
		writeError(w, http.StatusBadRequest, KindValidation, "Invalid user id")
		return
	}

	if err := r.ParseMultipartForm(maxUploadSize); err != nil {
		writeError(w, http.StatusBadRequest, KindValidation, "Invalid multipart form")
		return
	}

	user, err := h.Users.FindByID(r.Context(), id)
	if err != nil {
		if repositories.IsNotFound(err) {
			writeError(w, http.StatusNotFound, KindNotFound, "User not found")
			return
		}
		writeServiceError(w, err)
		return
	}

	if v := formValue(r, "username"); v != nil && *v != "" {
		user.Username = *v
	}
	if v := formValue(r, "age"); v != nil {
		age, err := strconv.Atoi(*v)
		if err != nil {
			writeError(w, http.StatusBadRequest, KindValidation, "age must be a number")
			return
		}
		user.Age = age
	}
	if v := formValue(r, "college"); v != nil && *v != "" {
		user.College = *v
	}
	if v := formValue(r, "yearLevel"); v != nil && *v != "" {
		user.YearLevel = *v
	}
	if v := formValue(r, "bio"); v != nil {
		user.Bio = v
	}
	if vs := formValues(r, "customInterests"); vs != nil {
		user.CustomInterests = vs
	}
	if vs := formValues(r, "categorizedInterests"); vs != nil {
		user.CategorizedInterests = vs
	}
	path, ok := h.saveUpload(w, r)
	if !ok {
		return
	}
	if path != nil {
		user.ProfileImage = path
	}

	if err := h.Users.Update(r.Context(), user); err != nil {
		writeServiceError(w, err)
		return
	}

	logrus.WithField("user", user.ID.Hex()).Info("Profile updated")
	writeJSON(w, http.StatusOK, user)
}

// saveUpload stores the optional profileImage file. It returns the
// stored path and true on success, (nil, true) when no file was sent,
// and writes the error response itself on failure.
func (h *ProfileHandler) saveUpload(w http.ResponseWriter, r *http.Request) (*string, bool) {
	file, header, err := r.FormFile("profileImage")
	if err != nil {
		if err == http.ErrMissingFile {
			return nil, true
		}
		writeError(w, http.StatusBadRequest, KindValidation, "Invalid profileImage upload")
		return nil, false
	}
	defer file.Close()

	path, err := h.Files.Save(file, header.Filename)
	if err != nil {
		logrus.WithError(err).Error("Failed to store upload")
		writeError(w, http.StatusServiceUnavailable, KindUnavailable, "Failed to store image")
		return nil, false
	}
	return &path, true
}

// formValue distinguishes an absent form field (nil) from one set to
// the empty string.
func formValue(r *http.Request, key string) *string {
	if r.MultipartForm == nil {
		return nil
	}
	values, ok := r.MultipartForm.Value[key]
	if !ok || len(values) == 0 {
		return nil
	}
	return &values[0]
}

func formValues(r *http.Request, key string) []string {
	if r.MultipartForm == nil {
		return nil
	}
	return r.MultipartForm.Value[key]
}
