package controllers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"lotrblog/app/models"
	"lotrblog/app/services"
)

const (
	msgCommentsRetrieve = "The comments information could not be retrieved."
	msgCommentSave      = "There was an error while saving the comment to the database."
	msgCommentInput     = "Please provide text for the comment."
)

// CommentController handles HTTP requests for the comments of a post
type CommentController struct {
	commentService *services.CommentService
}

// NewCommentController creates a new CommentController
func NewCommentController(commentService *services.CommentService) *CommentController {
	return &CommentController{commentService: commentService}
}

// RegisterRoutes mounts the nested comment endpoints on the root router.
func (cc *CommentController) RegisterRoutes(router *mux.Router) {
	router.HandleFunc(PostsPath+"/{id}/comments", cc.Index).Methods(http.MethodGet)
	router.HandleFunc(PostsPath+"/{id}/comments", cc.Create).Methods(http.MethodPost)
}

// Index handles listing the comments of a post
func (cc *CommentController) Index(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r)
	if !ok {
		sendNotFound(w)
		return
	}

	comments, err := cc.commentService.ListComments(r.Context(), postID)
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		sendNotFound(w)
	case err != nil:
		sendServerError(w, r, "list comments", err, msgCommentsRetrieve)
	default:
		sendJSON(w, http.StatusOK, comments)
	}
}

// Create handles adding a comment to a post
func (cc *CommentController) Create(w http.ResponseWriter, r *http.Request) {
	postID, ok := pathID(r)
	if !ok {
		sendNotFound(w)
		return
	}

	var in models.CommentInput
	decodeBody(r, &in)

	comment, err := cc.commentService.CreateComment(r.Context(), postID, in)
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		sendNotFound(w)
	case errors.Is(err, models.ErrValidation):
		sendBadRequest(w, msgCommentInput)
	case err != nil:
		sendServerError(w, r, "create comment", err, msgCommentSave)
	default:
		sendJSON(w, http.StatusCreated, comment)
	}
}
