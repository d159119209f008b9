package handler

import (
	"context"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"portfolio-site/internal/bootstrap"
	mysqlClient "portfolio-site/internal/platform/mysql"
)

type HealthHandler struct {
	app *bootstrap.App
}

type dependencyStatus struct {
	OK      bool   `json:"ok"`
	Message string `json:"message,omitempty"`
}

func NewHealthHandler(app *bootstrap.App) *HealthHandler {
	return &HealthHandler{app: app}
}

// Check reports uptime and the state of every enabled side channel. The
// contact form keeps working when they are down, so only they are listed.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	deps := gin.H{}
	allOK := true
	record := func(name string, s dependencyStatus) {
		deps[name] = s
		allOK = allOK && s.OK
	}

	if h.app.MySQL != nil {
		record("mysql", h.checkMySQL(ctx))
	}
	if h.app.MQConn != nil {
		record("rabbitmq", h.checkRabbitMQ())
	}

	body := gin.H{
		"app":          h.app.Config.App.Name,
		"env":          h.app.Config.App.Env,
		"uptime_sec":   int(time.Since(h.app.StartedAt).Seconds()),
		"dependencies": deps,
	}
	if h.app.Counter != nil {
		status := h.checkRedis(ctx)
		record("redis", status)
		if status.OK {
			if total, today, err := h.app.Counter.Stats(ctx); err == nil {
				body["submissions"] = gin.H{"total": total, "today": today}
			}
		}
	}

	statusCode := http.StatusOK
	if !allOK {
		statusCode = http.StatusServiceUnavailable
	}
	c.JSON(statusCode, body)
}

func (h *HealthHandler) checkMySQL(ctx context.Context) dependencyStatus {
	if err := mysqlClient.Ping(ctx, h.app.MySQL); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	return dependencyStatus{OK: true}
}

func (h *HealthHandler) checkRedis(ctx context.Context) dependencyStatus {
	if err := h.app.Counter.Ping(ctx); err != nil {
		return dependencyStatus{OK: false, Message: err.Error()}
	}
	return dependencyStatus{OK: true}
}

func (h *HealthHandler) checkRabbitMQ() dependencyStatus {
	if h.app.MQConn.IsClosed() {
		return dependencyStatus{OK: false, Message: "connection closed"}
	}
	return dependencyStatus{OK: true}
}
