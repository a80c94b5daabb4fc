package auth

import (
	"errors"
	"log"
	"net/http"
	"sync"

	"github.com/gin-gonic/gin"
)

// setupMutex serializes first-admin creation so concurrent setup requests
// cannot both pass the HasUsers check.
var setupMutex sync.Mutex

// Auditor records authentication events. May be nil.
type Auditor interface {
	LogAuth(userID uint, action string, ipAddr string, success bool)
}

// Controller exposes the JSON authentication endpoints.
type Controller struct {
	service        *Service
	sessionManager *SessionManager
	auditor        Auditor
}

// NewController creates a new authentication controller.
func NewController(service *Service, sessionManager *SessionManager, auditor Auditor) *Controller {
	return &Controller{
		service:        service,
		sessionManager: sessionManager,
		auditor:        auditor,
	}
}

func (ctrl *Controller) audit(userID uint, action, ipAddr string, success bool) {
	if ctrl.auditor != nil {
		ctrl.auditor.LogAuth(userID, action, ipAddr, success)
	}
}

type loginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type setupRequest struct {
	Username string `json:"username" binding:"required"`
	Email    string `json:"email" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /api/auth/login.
func (ctrl *Controller) Login(c *gin.Context) {
	var req loginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username and password are required"})
		return
	}

	user, err := ctrl.service.Authenticate(req.Username, req.Password)
	if err != nil {
		ctrl.audit(0, "login", c.ClientIP(), false)
		if errors.Is(err, ErrAccountLocked) {
			c.JSON(http.StatusForbidden, gin.H{"error": ErrAccountLocked.Error()})
			return
		}
		// Do not distinguish unknown user from wrong password
		c.JSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
		return
	}
	ctrl.audit(user.ID, "login", c.ClientIP(), true)

	if err := ctrl.sessionManager.CreateSession(c.Request, user); err != nil {
		log.Printf("Failed to create session for %s: %v", user.Username, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to create session"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"username": user.Username,
		"email":    user.Email,
	})
}

// Logout handles POST /api/auth/logout.
func (ctrl *Controller) Logout(c *gin.Context) {
	userID := ctrl.sessionManager.GetUserID(c.Request)
	if err := ctrl.sessionManager.DestroySession(c.Request); err != nil {
		log.Printf("Failed to destroy session: %v", err)
	}
	ctrl.audit(userID, "logout", c.ClientIP(), true)
	c.JSON(http.StatusOK, gin.H{"status": "logged out"})
}

// Setup handles POST /api/auth/setup. It creates the first administrator
// account and is disabled once any account exists.
func (ctrl *Controller) Setup(c *gin.Context) {
	setupMutex.Lock()
	defer setupMutex.Unlock()

	hasUsers, err := ctrl.service.HasUsers()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to check existing accounts"})
		return
	}
	if hasUsers {
		c.JSON(http.StatusForbidden, gin.H{"error": "setup already completed"})
		return
	}

	var req setupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "username, email and password are required"})
		return
	}

	if len(req.Password) < MinPasswordLength {
		c.JSON(http.StatusBadRequest, gin.H{
			"error": "password must be at least 12 characters",
		})
		return
	}

	user, err := ctrl.service.CreateUser(req.Username, req.Email, req.Password)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := ctrl.sessionManager.CreateSession(c.Request, user); err != nil {
		log.Printf("Failed to create session after setup: %v", err)
	}

	ctrl.audit(user.ID, "setup", c.ClientIP(), true)
	c.JSON(http.StatusCreated, gin.H{
		"username": user.Username,
		"email":    user.Email,
	})
}

// Session handles GET /api/auth/session. It reports whether the request is
// authenticated and hands out the CSRF token for subsequent writes.
func (ctrl *Controller) Session(c *gin.Context) {
	resp := gin.H{
		"authenticated": false,
		"csrf_token":    GetCSRFToken(c),
	}

	if !ctrl.service.IsAuthEnabled() {
		resp["authenticated"] = true
		resp["auth_mode"] = "none"
		c.JSON(http.StatusOK, resp)
		return
	}

	resp["auth_mode"] = "local"
	if ctrl.sessionManager.IsAuthenticated(c.Request) {
		resp["authenticated"] = true
		resp["username"] = ctrl.sessionManager.GetUsername(c.Request)
	}

	c.JSON(http.StatusOK, resp)
}
