package controller

import (
	"errors"
	"net/http"

	"quiz_exam_backend/internal/middleware"
	"quiz_exam_backend/internal/service"
	"quiz_exam_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
	IsRelease   bool // 是否为生产环境，决定 Cookie 的 Secure 标记
}

func NewAuthController(authService *service.AuthService, isRelease bool) *AuthController {
	return &AuthController{
		AuthService: authService,
		IsRelease:   isRelease,
	}
}

// LoginRequest 手机号登录
// swagger:model LoginRequest
type LoginRequest struct {
	Phone string `json:"phone" binding:"required"`
}

// Login godoc
// @Summary 手机号登录
// @Description 白名单内的手机号直接登录，首次登录自动建档
// @Tags 认证
// @Accept  json
// @Produce  json
// @Param   body body LoginRequest true "手机号"
// @Success 200 {object} util.Response{data=object} "登录成功"
// @Failure 400 {object} util.Response "手机号格式不正确"
// @Failure 403 {object} util.Response "手机号不在白名单内"
// @Router /api/login [post]
func (c *AuthController) Login(ctx *gin.Context) {
	var req LoginRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, user, err := c.AuthService.Login(req.Phone)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidPhone):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrPhoneNotWhitelisted):
			util.Error(ctx, http.StatusForbidden, err.Error())
		default:
			util.LogInternalError(ctx, err)
		}
		return
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.TokenCookie, token, int(c.AuthService.Cfg.Load().Session.TokenTTL.Seconds()), "/", "", c.IsRelease, true)

	util.Success(ctx, gin.H{
		"userId": user.ID,
		"phone":  user.Phone,
	})
}

// Logout godoc
// @Summary 退出登录
// @Tags 认证
// @Produce json
// @Success 200 {object} util.Response
// @Router /api/logout [post]
func (c *AuthController) Logout(ctx *gin.Context) {
	token := middleware.GetToken(ctx)
	if token != "" {
		if err := c.AuthService.Logout(token); err != nil {
			util.LogInternalError(ctx, err)
			return
		}
	}

	ctx.SetSameSite(http.SameSiteLaxMode)
	ctx.SetCookie(middleware.TokenCookie, "", -1, "/", "", c.IsRelease, true)
	util.Success(ctx, nil)
}

// Profile godoc
// @Summary 当前登录用户
// @Tags 认证
// @Produce json
// @Success 200 {object} util.Response{data=object}
// @Failure 401 {object} util.Response
// @Router /api/profile [get]
func (c *AuthController) Profile(ctx *gin.Context) {
	id := middleware.GetIdentity(ctx)
	if id == nil {
		util.Unauthorized(ctx)
		return
	}
	util.Success(ctx, gin.H{
		"userId": id.UserID,
		"phone":  id.Phone,
	})
}
