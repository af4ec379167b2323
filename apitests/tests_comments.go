package apitests

import (
	"fmt"
	"net/http"

	"github.com/gojob/blog-api-contract-tests/servicedef"
)

// DoCommentTests comments on the post created by the posts group, or on the fallback post
// if that group did not create one. Comments are looked up by the id of their post.
func DoCommentTests(t *T) {
	t.Check(servicedef.TestCase{
		Name:     "create",
		Method:   http.MethodPost,
		Endpoint: servicedef.CreateCommentPath,
		Payload: servicedef.Payload(servicedef.CommentParams{
			Content: t.Fixtures().CommentContent,
			PostID:  t.env.postID,
		}),
		ExpectedStatus: http.StatusCreated,
	})

	t.Check(servicedef.TestCase{
		Name:           "get by id",
		Method:         http.MethodGet,
		Endpoint:       fmt.Sprintf("%s?id=%d", servicedef.GetCommentPath, t.env.postID),
		ExpectedStatus: http.StatusOK,
	})
}
