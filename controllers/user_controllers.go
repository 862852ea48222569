package controllers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/inamrestro/restaurant-app/middlewares"
	"github.com/inamrestro/restaurant-app/services"
	"github.com/inamrestro/restaurant-app/utils"
)

type UserController struct {
	Auth         *services.AuthService
	Sessions     *utils.SessionManager
	CookieSecure bool
}

func NewUserController(auth *services.AuthService, sessions *utils.SessionManager, cookieSecure bool) *UserController {
	return &UserController{Auth: auth, Sessions: sessions, CookieSecure: cookieSecure}
}

// SignupForm
func (uc *UserController) SignupForm(c *gin.Context) {
	utils.RenderPage(c, http.StatusOK, "signup", "", nil)
}

// Signup creates the account and sends the user to the login page.
func (uc *UserController) Signup(c *gin.Context) {
	var in services.SignupInput
	if err := c.ShouldBind(&in); err != nil {
		utils.RenderPage(c, http.StatusBadRequest, "signup", err.Error(), gin.H{"error": err.Error()})
		return
	}

	user, err := uc.Auth.Signup(c.Request.Context(), in)
	switch {
	case errors.Is(err, services.ErrPasswordMismatch):
		utils.RenderPage(c, http.StatusBadRequest, "signup", "Passwords do not match", gin.H{"error": "Passwords do not match"})
		return
	case errors.Is(err, services.ErrPasswordTooLong):
		utils.RenderPage(c, http.StatusBadRequest, "signup", "Password must be at most 72 bytes", gin.H{"error": "Password must be at most 72 bytes"})
		return
	case errors.Is(err, services.ErrUsernameTaken):
		utils.RenderPage(c, http.StatusConflict, "signup", "Username already taken", gin.H{"error": "Username already taken"})
		return
	case err != nil:
		renderError(c, "signup", err)
		return
	}

	utils.InfoLogger.Printf("New user registered: %s", user.Username)
	utils.Redirect(c, "/login/")
}

// LoginForm
func (uc *UserController) LoginForm(c *gin.Context) {
	utils.RenderPage(c, http.StatusOK, "login", "", gin.H{"next": c.Query("next")})
}

// Login starts a session. A failed attempt just shows the form again,
// without saying what went wrong.
func (uc *UserController) Login(c *gin.Context) {
	var input struct {
		Username string `form:"username" json:"username" binding:"required"`
		Password string `form:"password" json:"password" binding:"required"`
	}
	next := c.Query("next")

	if err := c.ShouldBind(&input); err != nil {
		utils.RenderPage(c, http.StatusOK, "login", "", gin.H{"next": next})
		return
	}

	user, err := uc.Auth.Authenticate(c.Request.Context(), input.Username, input.Password)
	if err != nil {
		if !errors.Is(err, services.ErrInvalidCredentials) {
			_ = c.Error(err)
		}
		utils.InfoLogger.Printf("Login failed for %q", input.Username)
		utils.RenderPage(c, http.StatusOK, "login", "", gin.H{"next": next})
		return
	}

	token, err := uc.Sessions.Issue(utils.Identity{UserID: user.ID, Username: user.Username, IsStaff: user.IsStaff})
	if err != nil {
		renderError(c, "login", err)
		return
	}
	uc.setSessionCookie(c, token, int(uc.Sessions.TTL().Seconds()))

	utils.InfoLogger.Printf("Login successful for user: %s", user.Username)
	utils.Redirect(c, safeNext(next))
}

// Logout revokes the token and clears the cookie.
func (uc *UserController) Logout(c *gin.Context) {
	if token := middlewares.SessionToken(c); token != "" {
		uc.Sessions.Revoke(token)
	}
	uc.setSessionCookie(c, "", -1)
	utils.Redirect(c, "/login/")
}

// Profile
func (uc *UserController) Profile(c *gin.Context) {
	user, err := uc.Auth.Profile(c.Request.Context(), currentUser(c).UserID)
	if err != nil {
		renderError(c, "profile", err)
		return
	}
	utils.RenderPage(c, http.StatusOK, "profile", "", gin.H{"user": user})
}

func (uc *UserController) setSessionCookie(c *gin.Context, value string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(utils.SessionCookie, value, maxAge, "/", "", uc.CookieSecure, true)
}

// safeNext keeps redirects on this site.
func safeNext(next string) string {
	if strings.HasPrefix(next, "/") && !strings.HasPrefix(next, "//") && !strings.HasPrefix(next, "/\\") {
		return next
	}
	return "/"
}
