// internal/operator/operator_controller.go
package operator

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"golang.org/x/crypto/bcrypt"

	"github.com/TonyMalanga/BroadcastControl/config"
	"github.com/TonyMalanga/BroadcastControl/pkg/responses"
	"github.com/TonyMalanga/BroadcastControl/pkg/token"
	"github.com/TonyMalanga/BroadcastControl/pkg/validator"
)

// OperatorController handles operator registration and login.
type OperatorController struct {
	repo   OperatorRepository
	config *config.Config
}

// NewOperatorController creates a new OperatorController.
func NewOperatorController(repo OperatorRepository, cfg *config.Config) *OperatorController {
	return &OperatorController{repo: repo, config: cfg}
}

type RegisterRequest struct {
	Username    string `json:"username" binding:"required,min=3,max=64"`
	Password    string `json:"password" binding:"required,min=8,max=128"`
	DisplayName string `json:"display_name" binding:"omitempty,max=100"`
}

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// Register creates a new operator account.
func (oc *OperatorController) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	existing, _ := oc.repo.FindByUsername(req.Username)
	if existing != nil {
		responses.SendError(c, http.StatusConflict, "Operator with this username already exists", nil)
		return
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(req.Password), 14)
	if err != nil {
		responses.InternalServerError(c, "Failed to hash password")
		return
	}

	op := Operator{
		Username:     req.Username,
		PasswordHash: string(hash),
		DisplayName:  req.DisplayName,
	}
	if err := oc.repo.Create(&op); err != nil {
		responses.InternalServerError(c, "Failed to create operator")
		return
	}

	responses.SendSuccess(c, http.StatusCreated, "Operator created successfully", op)
}

// Login verifies credentials and issues a bearer token.
func (oc *OperatorController) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		responses.SendError(c, http.StatusBadRequest, "Validation failed", validator.ParseError(err))
		return
	}

	op, err := oc.repo.FindByUsername(req.Username)
	if err != nil {
		responses.InternalServerError(c, "")
		return
	}
	if op == nil || bcrypt.CompareHashAndPassword([]byte(op.PasswordHash), []byte(req.Password)) != nil {
		responses.Unauthorized(c, "Invalid username or password")
		return
	}

	signed, err := token.GenerateJWT(op.ID, op.Username, op.Role, oc.config.JWT.Secret, oc.config.JWT.ExpiryMinutes)
	if err != nil {
		responses.InternalServerError(c, "Failed to issue token")
		return
	}

	responses.SendSuccess(c, http.StatusOK, "Login successful", gin.H{
		"token":    signed,
		"operator": op,
	})
}
