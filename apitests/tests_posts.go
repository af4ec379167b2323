package apitests

import (
	"fmt"
	"net/http"

	"github.com/gojob/blog-api-contract-tests/servicedef"
)

func DoPostTests(t *T) {
	f := t.Fixtures()

	result, ok := t.Check(servicedef.TestCase{
		Name:           "create",
		Method:         http.MethodPost,
		Endpoint:       servicedef.CreatePostPath,
		Payload:        servicedef.Payload(servicedef.PostParams{Title: f.PostTitle, Content: f.PostContent}),
		ExpectedStatus: http.StatusCreated,
	})
	if ok && result.Success {
		if id, found := responseID(result.Response); found {
			t.env.postID = id
		}
	}
	t.Debug("Using post id %d", t.env.postID)

	t.Check(servicedef.TestCase{
		Name:           "list",
		Method:         http.MethodGet,
		Endpoint:       servicedef.GetPostPath,
		ExpectedStatus: http.StatusOK,
	})

	t.Check(servicedef.TestCase{
		Name:           "get by id",
		Method:         http.MethodGet,
		Endpoint:       fmt.Sprintf("%s?id=%d", servicedef.GetPostPath, t.env.postID),
		ExpectedStatus: http.StatusOK,
	})

	// The API reads the update from the query string even though it is a POST.
	t.Check(servicedef.TestCase{
		Name:     "update",
		Method:   http.MethodPost,
		Endpoint: servicedef.UpdatePostPath,
		Payload: servicedef.Payload(servicedef.UpdatePostParams{
			ID:      t.env.postID,
			Title:   f.UpdatedTitle,
			Content: f.UpdatedContent,
		}),
		Shape:          servicedef.QueryShape,
		ExpectedStatus: http.StatusOK,
	})
}
