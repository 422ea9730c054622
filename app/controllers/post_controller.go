package controllers

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"lotrblog/app/models"
	"lotrblog/app/services"
)

const (
	msgPostsRetrieve = "The posts information could not be retrieved."
	msgPostRetrieve  = "The post information could not be retrieved."
	msgPostSave      = "There was an error while saving the post to the database"
	msgPostModify    = "The post information could not be modified."
	msgPostRemove    = "The post could not be removed"
	msgPostInput     = "Please provide title and contents for the post."
	msgPostDeleted   = "The post has been deleted."
)

// PostController handles HTTP requests for blog posts
type PostController struct {
	postService *services.PostService
}

// NewPostController creates a new PostController
func NewPostController(postService *services.PostService) *PostController {
	return &PostController{postService: postService}
}

// PostsPath is the collection path every API route hangs off.
const PostsPath = "/api/posts"

// RegisterRoutes mounts the post endpoints on the root router. The
// collection also answers with a trailing slash.
func (pc *PostController) RegisterRoutes(router *mux.Router) {
	for _, path := range []string{PostsPath, PostsPath + "/"} {
		router.HandleFunc(path, pc.Index).Methods(http.MethodGet)
		router.HandleFunc(path, pc.Create).Methods(http.MethodPost)
	}
	router.HandleFunc(PostsPath+"/{id}", pc.Show).Methods(http.MethodGet)
	router.HandleFunc(PostsPath+"/{id}", pc.Edit).Methods(http.MethodPut)
	router.HandleFunc(PostsPath+"/{id}", pc.Delete).Methods(http.MethodDelete)
}

// Index handles listing posts. Query parameters become equality filters.
func (pc *PostController) Index(w http.ResponseWriter, r *http.Request) {
	filter := make(models.PostFilter)
	for key, values := range r.URL.Query() {
		if len(values) > 0 {
			filter[key] = values[0]
		}
	}

	posts, err := pc.postService.ListPosts(r.Context(), filter)
	if err != nil {
		sendServerError(w, r, "list posts", err, msgPostsRetrieve)
		return
	}

	sendJSON(w, http.StatusOK, posts)
}

// Show handles displaying a single post
func (pc *PostController) Show(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		sendNotFound(w)
		return
	}

	post, err := pc.postService.GetPost(r.Context(), id)
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		sendNotFound(w)
	case err != nil:
		sendServerError(w, r, "get post", err, msgPostRetrieve)
	default:
		sendJSON(w, http.StatusOK, post)
	}
}

// Create handles creating a new post
func (pc *PostController) Create(w http.ResponseWriter, r *http.Request) {
	var in models.PostInput
	decodeBody(r, &in)

	post, err := pc.postService.CreatePost(r.Context(), in)
	switch {
	case errors.Is(err, models.ErrValidation):
		sendBadRequest(w, msgPostInput)
	case err != nil:
		sendServerError(w, r, "create post", err, msgPostSave)
	default:
		sendJSON(w, http.StatusCreated, post)
	}
}

// Edit handles updating an existing post
func (pc *PostController) Edit(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		sendNotFound(w)
		return
	}

	var in models.PostInput
	decodeBody(r, &in)

	post, err := pc.postService.UpdatePost(r.Context(), id, in)
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		sendNotFound(w)
	case errors.Is(err, models.ErrValidation):
		sendBadRequest(w, msgPostInput)
	case err != nil:
		sendServerError(w, r, "update post", err, msgPostModify)
	default:
		sendJSON(w, http.StatusOK, post)
	}
}

type deleteResponse struct {
	Message     string       `json:"message"`
	DeletedPost *models.Post `json:"deletedPost"`
}

// Delete handles deleting a post
func (pc *PostController) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := pathID(r)
	if !ok {
		sendNotFound(w)
		return
	}

	deleted, err := pc.postService.DeletePost(r.Context(), id)
	switch {
	case errors.Is(err, services.ErrPostNotFound):
		sendNotFound(w)
	case err != nil:
		sendServerError(w, r, "delete post", err, msgPostRemove)
	default:
		sendJSON(w, http.StatusOK, deleteResponse{Message: msgPostDeleted, DeletedPost: deleted})
	}
}
