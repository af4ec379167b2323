package apitests

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/mail"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/golang-jwt/jwt/v5"
)

var fakeAPISecret = []byte("contract-tests-secret")

type fakeUser struct {
	ID       int    `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
	password string
}

type fakePost struct {
	ID      int
	Title   string
	Content string
	UserID  int
}

type fakeComment struct {
	ID      int
	Content string
	PostID  int
	UserID  int
}

// fakeAPI is an in-memory implementation of the blog API, following the status codes of the
// real server closely enough to run the whole suite against it.
type fakeAPI struct {
	lock     sync.Mutex
	users    []*fakeUser
	posts    []*fakePost
	comments []*fakeComment
	tokenSeq int
}

type userIDKey struct{}

func newFakeAPI() *fakeAPI {
	return &fakeAPI{}
}

func (a *fakeAPI) Handler() http.Handler {
	r := chi.NewRouter()
	r.Route("/auth", func(r chi.Router) {
		r.Post("/register", a.register)
		r.Post("/login", a.login)
		r.Post("/refresh", a.refresh)
	})
	r.Route("/api", func(r chi.Router) {
		r.Use(a.requireAuth)
		r.Get("/profile", a.profile)
		r.Post("/create_post", a.createPost)
		r.Get("/get_post", a.getPost)
		r.Post("/update_post", a.updatePost)
		r.Post("/create_comment", a.createComment)
		r.Get("/get_comment", a.getComment)
	})
	r.Get("/public/test", a.publicTest)
	return r
}

func withUserID(ctx context.Context, id int) context.Context {
	return context.WithValue(ctx, userIDKey{}, id)
}

func userIDFrom(ctx context.Context) int {
	id, _ := ctx.Value(userIDKey{}).(int)
	return id
}

func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

func (a *fakeAPI) issueToken(userID int) (string, error) {
	a.tokenSeq++
	claims := jwt.MapClaims{
		"user_id": userID,
		"seq":     a.tokenSeq,
		"exp":     time.Now().Add(time.Hour).Unix(),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(fakeAPISecret)
}

func parseUserID(header string) (int, error) {
	tokenString := strings.TrimPrefix(header, "Bearer ")
	if tokenString == "" || tokenString == header {
		return 0, errors.New("missing bearer token")
	}
	claims := jwt.MapClaims{}
	_, err := jwt.ParseWithClaims(tokenString, claims, func(*jwt.Token) (interface{}, error) {
		return fakeAPISecret, nil
	}, jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}))
	if err != nil {
		return 0, err
	}
	id, ok := claims["user_id"].(float64)
	if !ok {
		return 0, errors.New("token has no user_id")
	}
	return int(id), nil
}

func (a *fakeAPI) findUserByEmail(email string) *fakeUser {
	for _, u := range a.users {
		if u.Email == email {
			return u
		}
	}
	return nil
}

func (a *fakeAPI) findUser(id int) *fakeUser {
	for _, u := range a.users {
		if u.ID == id {
			return u
		}
	}
	return nil
}

func (a *fakeAPI) register(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	if body.Username == "" {
		writeError(w, http.StatusBadRequest, "username is required")
		return
	}
	if addr, err := mail.ParseAddress(body.Email); err != nil || addr.Address != body.Email {
		writeError(w, http.StatusBadRequest, "invalid email")
		return
	}
	if len(body.Password) < 6 {
		writeError(w, http.StatusBadRequest, "password must be at least 6 characters")
		return
	}

	a.lock.Lock()
	defer a.lock.Unlock()
	if a.findUserByEmail(body.Email) != nil {
		writeError(w, http.StatusBadRequest, "User already exists")
		return
	}
	user := &fakeUser{ID: len(a.users) + 1, Username: body.Username, Email: body.Email, password: body.Password}
	a.users = append(a.users, user)
	token, err := a.issueToken(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, map[string]interface{}{"token": token, "user": user})
}

func (a *fakeAPI) login(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	a.lock.Lock()
	defer a.lock.Unlock()
	user := a.findUserByEmail(body.Email)
	if user == nil {
		writeError(w, http.StatusUnauthorized, "user does not exist")
		return
	}
	if user.password != body.Password {
		writeError(w, http.StatusUnauthorized, "wrong password")
		return
	}
	token, err := a.issueToken(user.ID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"token": token, "user": user})
}

func (a *fakeAPI) refresh(w http.ResponseWriter, r *http.Request) {
	header := r.Header.Get("Authorization")
	if header == "" {
		writeError(w, http.StatusBadRequest, "Authorization header is required")
		return
	}
	userID, err := parseUserID(header)
	if err != nil {
		writeError(w, http.StatusUnauthorized, err.Error())
		return
	}

	a.lock.Lock()
	defer a.lock.Unlock()
	token, err := a.issueToken(userID)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"token": token})
}

func (a *fakeAPI) requireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		userID, err := parseUserID(r.Header.Get("Authorization"))
		if err != nil {
			writeError(w, http.StatusUnauthorized, err.Error())
			return
		}
		next.ServeHTTP(w, r.WithContext(withUserID(r.Context(), userID)))
	})
}

func (a *fakeAPI) profile(w http.ResponseWriter, r *http.Request) {
	a.lock.Lock()
	defer a.lock.Unlock()
	user := a.findUser(userIDFrom(r.Context()))
	if user == nil {
		writeError(w, http.StatusUnauthorized, "User not found")
		return
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"user": user})
}

func (a *fakeAPI) createPost(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Title   string `json:"title"`
		Content string `json:"content"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Title == "" {
		writeError(w, http.StatusBadRequest, "title and content are required")
		return
	}

	a.lock.Lock()
	defer a.lock.Unlock()
	post := &fakePost{ID: len(a.posts) + 1, Title: body.Title, Content: body.Content, UserID: userIDFrom(r.Context())}
	a.posts = append(a.posts, post)
	writeJSON(w, http.StatusCreated, post)
}

func (a *fakeAPI) findPost(w http.ResponseWriter, r *http.Request) *fakePost {
	id, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "Invalid post ID")
		return nil
	}
	for _, p := range a.posts {
		if p.ID == id {
			return p
		}
	}
	writeError(w, http.StatusNotFound, "Post not found")
	return nil
}

func (a *fakeAPI) getPost(w http.ResponseWriter, r *http.Request) {
	a.lock.Lock()
	defer a.lock.Unlock()
	if r.URL.Query().Get("id") == "" {
		posts := append([]*fakePost{}, a.posts...)
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Post details", "post": posts})
		return
	}
	if post := a.findPost(w, r); post != nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Post details", "post": []*fakePost{post}})
	}
}

func (a *fakeAPI) updatePost(w http.ResponseWriter, r *http.Request) {
	a.lock.Lock()
	defer a.lock.Unlock()
	post := a.findPost(w, r)
	if post == nil {
		return
	}
	if post.UserID != userIDFrom(r.Context()) {
		writeError(w, http.StatusForbidden, "You are not the owner of this post")
		return
	}
	post.Title = r.URL.Query().Get("title")
	post.Content = r.URL.Query().Get("content")
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Post updated", "post": post})
}

func (a *fakeAPI) createComment(w http.ResponseWriter, r *http.Request) {
	var body struct {
		Content string `json:"content"`
		PostID  int    `json:"post_id"`
	}
	if err := json.NewDecoder(r.Body).Decode(&body); err != nil || body.Content == "" {
		writeError(w, http.StatusBadRequest, "content is required")
		return
	}

	a.lock.Lock()
	defer a.lock.Unlock()
	comment := &fakeComment{ID: len(a.comments) + 1, Content: body.Content, PostID: body.PostID, UserID: userIDFrom(r.Context())}
	a.comments = append(a.comments, comment)
	writeJSON(w, http.StatusCreated, map[string]interface{}{"message": "Comment created", "code": 0})
}

func (a *fakeAPI) getComment(w http.ResponseWriter, r *http.Request) {
	postID, err := strconv.Atoi(r.URL.Query().Get("id"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	a.lock.Lock()
	defer a.lock.Unlock()
	comments := []*fakeComment{}
	for _, c := range a.comments {
		if c.PostID == postID {
			comments = append(comments, c)
		}
	}
	writeJSON(w, http.StatusOK, map[string]interface{}{"message": "Comment details", "code": 0, "data": comments})
}

func (a *fakeAPI) publicTest(w http.ResponseWriter, r *http.Request) {
	if userID, err := parseUserID(r.Header.Get("Authorization")); err == nil {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"message": fmt.Sprintf("test for authenticated user %d", userID),
			"user_id": userID,
		})
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"message": "Public test"})
}
