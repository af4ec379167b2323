package servicedef

import (
	"encoding/json"
	"fmt"
	"net/http"

	"gopkg.in/launchdarkly/go-sdk-common.v2/ldvalue"
)

// Resource paths of the blog API.
const (
	RegisterPath      = "/auth/register"
	LoginPath         = "/auth/login"
	RefreshPath       = "/auth/refresh"
	ProfilePath       = "/api/profile"
	CreatePostPath    = "/api/create_post"
	GetPostPath       = "/api/get_post"
	UpdatePostPath    = "/api/update_post"
	CreateCommentPath = "/api/create_comment"
	GetCommentPath    = "/api/get_comment"
	PublicTestPath    = "/public/test"
)

// PayloadShape says where a test case's payload goes in the request.
type PayloadShape string

const (
	// DefaultShape sends the payload as query parameters for GET and as a JSON body otherwise.
	DefaultShape PayloadShape = ""
	// BodyShape always sends the payload as a JSON body.
	BodyShape PayloadShape = "body"
	// QueryShape always sends the payload as query parameters, even for POST and PUT.
	QueryShape PayloadShape = "query"
)

// Resolve returns the concrete shape for the given method.
func (s PayloadShape) Resolve(method string) PayloadShape {
	if s != DefaultShape {
		return s
	}
	if method == http.MethodGet {
		return QueryShape
	}
	return BodyShape
}

// TestCase describes one request and the status it is expected to produce.
type TestCase struct {
	Name           string
	Method         string
	Endpoint       string
	Payload        ldvalue.Value // ldvalue.Null() for no payload
	Shape          PayloadShape
	Headers        http.Header // nil for the defaults
	ExpectedStatus int
}

type RegisterParams struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
}

type LoginParams struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type PostParams struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type UpdatePostParams struct {
	ID      int    `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

type CommentParams struct {
	Content string `json:"content"`
	PostID  int    `json:"post_id"`
}

// Payload converts any of the parameter types above to the form carried by a TestCase. It
// panics if params cannot be marshaled, which only happens for a programming error.
func Payload(params interface{}) ldvalue.Value {
	value, err := PayloadOf(params)
	if err != nil {
		panic(err)
	}
	return value
}

// PayloadOf is like Payload but returns the marshaling error.
func PayloadOf(params interface{}) (ldvalue.Value, error) {
	data, err := json.Marshal(params)
	if err != nil {
		return ldvalue.Null(), fmt.Errorf("encoding request payload: %w", err)
	}
	return ldvalue.Parse(data), nil
}
