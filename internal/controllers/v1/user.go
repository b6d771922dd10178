package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/fundward/backend/internal/httputil"
	"github.com/fundward/backend/internal/models"
)

// RegisterUserRoutes registers the routes for users with the RouterGroup
// that is passed.
func RegisterUserRoutes(r *gin.RouterGroup) {
	{
		r.OPTIONS("", httputil.OptionsGetPost)
		r.GET("", GetUsers)
		r.POST("", CreateUser)
	}

	{
		r.OPTIONS("/:id", httputil.OptionsGetPatchDelete)
		r.GET("/:id", GetUser)
		r.DELETE("/:id", DeleteUser)
	}
}

type UserEditable struct {
	Name string `json:"name" binding:"required" example:"jane"`
}

type User struct {
	ID        uuid.UUID `json:"id"`
	CreatedAt time.Time `json:"createdAt"`
	Name      string    `json:"name"`
}

type UserResponse struct {
	Data  *User   `json:"data"`
	Error *string `json:"error"`
}

type UserListResponse struct {
	Data  []User  `json:"data"`
	Error *string `json:"error"`
}

func newUser(u models.User) User {
	return User{ID: u.ID, CreatedAt: u.CreatedAt, Name: u.Name}
}

// @Summary		Get users
// @Description	Returns a list of users
// @Tags			Users
// @Produce		json
// @Success		200	{object}	UserListResponse
// @Failure		500	{object}	UserListResponse
// @Router			/v1/users [get]
func GetUsers(c *gin.Context) {
	var users []models.User
	err := models.DB.Order("name ASC").Find(&users).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserListResponse{Error: &e})
		return
	}

	data := make([]User, 0, len(users))
	for _, user := range users {
		data = append(data, newUser(user))
	}

	c.JSON(http.StatusOK, UserListResponse{Data: data})
}

// @Summary		Get user
// @Description	Returns a specific user
// @Tags			Users
// @Produce		json
// @Success		200	{object}	UserResponse
// @Failure		400	{object}	UserResponse
// @Failure		404	{object}	UserResponse
// @Failure		500	{object}	UserResponse
// @Param			id	path		string	true	"ID of the user"
// @Router			/v1/users/{id} [get]
func GetUser(c *gin.Context) {
	id, err := parseID(c)
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	var user models.User
	err = models.DB.First(&user, id).Error
	if err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	data := newUser(user)
	c.JSON(http.StatusOK, UserResponse{Data: &data})
}

// @Summary		Create user
// @Description	Creates a new user
// @Tags			Users
// @Produce		json
// @Success		201		{object}	UserResponse
// @Failure		400		{object}	UserResponse
// @Failure		500		{object}	UserResponse
// @Param			user	body		UserEditable	true	"User"
// @Router			/v1/users [post]
func CreateUser(c *gin.Context) {
	var editable UserEditable
	if err := httputil.BindData(c, &editable); err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	user := models.User{Name: editable.Name}
	if err := models.DB.Create(&user).Error; err != nil {
		e := err.Error()
		c.JSON(status(err), UserResponse{Error: &e})
		return
	}

	data := newUser(user)
	c.JSON(http.StatusCreated, UserResponse{Data: &data})
}

// @Summary		Delete user
// @Description	Deletes a user and everything the user owns
// @Tags			Users
// @Success		204
// @Failure		400	{object}	httpError
// @Failure		404	{object}	httpError
// @Failure		500	{object}	httpError
// @Param			id	path		string	true	"ID of the user"
// @Router			/v1/users/{id} [delete]
func DeleteUser(c *gin.Context) {
	deleteResource[models.User](c)
}
