/*
Copyright 2026.

Licensed under the Apache License, Version 2.0 (the "License");
you may not use this file except in compliance with the License.
You may obtain a copy of the License at

    http://www.apache.org/licenses/LICENSE-2.0

Unless required by applicable law or agreed to in writing, software
distributed under the License is distributed on an "AS IS" BASIS,
WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
See the License for the specific language governing permissions and
limitations under the License.
*/

package notification

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/telekom/moodmail/pkg/apiresponses"
	"github.com/telekom/moodmail/pkg/audit"
	"github.com/telekom/moodmail/pkg/dispatch"
	"github.com/telekom/moodmail/pkg/system"
	"github.com/telekom/moodmail/pkg/template"
)

// NotificationAPIController provides the REST endpoints for mood
// notifications: group dispatch, single sends, template validation and
// inspection, and the cache reset hook.
type NotificationAPIController struct {
	log        *zap.SugaredLogger
	dispatcher *dispatch.Dispatcher
	store      *template.Store
	recorder   *audit.Recorder
}

// NewNotificationAPIController creates a new notification API controller.
func NewNotificationAPIController(log *zap.SugaredLogger, dispatcher *dispatch.Dispatcher, store *template.Store, recorder *audit.Recorder) *NotificationAPIController {
	return &NotificationAPIController{
		log:        log.Named("notification-api"),
		dispatcher: dispatcher,
		store:      store,
		recorder:   recorder,
	}
}

// BasePath returns the base path for notification routes
func (n *NotificationAPIController) BasePath() string {
	return "notifications"
}

// Handlers returns middleware to apply to all routes
func (n *NotificationAPIController) Handlers() []gin.HandlerFunc {
	return nil
}

// Register registers the notification routes
func (n *NotificationAPIController) Register(rg *gin.RouterGroup) error {
	rg.POST("dispatch", instrumentedHandler("handleDispatch", n.handleDispatch))
	rg.POST("send", instrumentedHandler("handleSend", n.handleSend))
	rg.POST("validate", instrumentedHandler("handleValidate", n.handleValidate))
	rg.GET("templates", instrumentedHandler("handleListTemplates", n.handleListTemplates))
	rg.DELETE("templates/cache", instrumentedHandler("handleClearTemplateCache", n.handleClearTemplateCache))
	return nil
}

// SendRequest is the single-send API input.
type SendRequest struct {
	To       string        `json:"to"`
	ToName   string        `json:"toName,omitempty"`
	Subject  string        `json:"subject"`
	Template string        `json:"template"`
	Data     template.Data `json:"data,omitempty"`
}

// SendResponse reports a delivered single send.
type SendResponse struct {
	Success   bool   `json:"success"`
	MessageID string `json:"messageId"`
}

// ValidateRequest is the validation-only API input.
type ValidateRequest struct {
	Template string        `json:"template"`
	Data     template.Data `json:"data,omitempty"`
}

// ValidateResponse reports whether a template name resolves.
type ValidateResponse struct {
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// TemplateListResponse lists the known template names.
type TemplateListResponse struct {
	Templates []string `json:"templates"`
}

// handleDispatch fans one event out to all its recipients and answers with
// the aggregated report: 200 on full success, 207 on partial failure, 500
// when every recipient failed. The report body is the same in all three.
func (n *NotificationAPIController) handleDispatch(ctx *gin.Context) {
	reqLog := system.GetReqLogger(ctx, n.log)

	var event dispatch.Event
	if err := ctx.ShouldBindJSON(&event); err != nil {
		apiresponses.RespondBadRequestWithDetails(ctx, "invalid request body", err.Error())
		return
	}

	report, err := n.dispatcher.Dispatch(ctx, event)
	if err != nil {
		apiresponses.RespondBadRequest(ctx, err.Error())
		return
	}

	reqLog.Infow("Dispatch handled",
		"group", event.GroupName,
		"recipients", len(event.Recipients),
		"status", report.Status)

	switch report.Status {
	case dispatch.StatusPartial:
		apiresponses.RespondMultiStatus(ctx, report)
	case dispatch.StatusFailed:
		ctx.JSON(http.StatusInternalServerError, report)
	default:
		apiresponses.RespondOK(ctx, report)
	}
}

// handleSend renders the named template and delivers a single message.
func (n *NotificationAPIController) handleSend(ctx *gin.Context) {
	reqLog := system.GetReqLogger(ctx, n.log)

	var req SendRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apiresponses.RespondBadRequestWithDetails(ctx, "invalid request body", err.Error())
		return
	}
	if req.To == "" {
		apiresponses.RespondBadRequest(ctx, "to is required")
		return
	}
	if req.Subject == "" {
		apiresponses.RespondBadRequest(ctx, "subject is required")
		return
	}
	if req.Template == "" {
		apiresponses.RespondBadRequest(ctx, "template is required")
		return
	}

	messageID, err := n.dispatcher.SendSingle(ctx, req.To, req.ToName, req.Subject, req.Template, req.Data)
	if err != nil {
		switch {
		case errors.Is(err, template.ErrNotFound):
			apiresponses.RespondNotFound(ctx, "template", req.Template)
		case errors.Is(err, template.ErrUnavailable):
			apiresponses.RespondServiceUnavailable(ctx, "template backing store")
		case errors.Is(err, dispatch.ErrTransport):
			reqLog.Errorw("Mail delivery failed",
				append(system.RecipientFields(req.To, req.ToName), "error", err)...)
			apiresponses.RespondBadGateway(ctx, err.Error())
		default:
			apiresponses.RespondInternalError(ctx, "send notification", err, reqLog)
		}
		return
	}

	apiresponses.RespondOK(ctx, SendResponse{Success: true, MessageID: messageID})
}

// handleValidate checks that a template name resolves to content. The data
// mapping is accepted for symmetry with send but cannot fail a render.
func (n *NotificationAPIController) handleValidate(ctx *gin.Context) {
	reqLog := system.GetReqLogger(ctx, n.log)

	var req ValidateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		apiresponses.RespondBadRequestWithDetails(ctx, "invalid request body", err.Error())
		return
	}
	if req.Template == "" {
		apiresponses.RespondBadRequest(ctx, "template is required")
		return
	}

	err := n.store.Validate(ctx, req.Template, req.Data)
	switch {
	case err == nil:
		apiresponses.RespondOK(ctx, ValidateResponse{Valid: true})
	case errors.Is(err, template.ErrNotFound):
		ctx.JSON(http.StatusNotFound, ValidateResponse{Valid: false, Error: err.Error()})
	case errors.Is(err, template.ErrUnavailable):
		ctx.JSON(http.StatusServiceUnavailable, ValidateResponse{Valid: false, Error: err.Error()})
	default:
		apiresponses.RespondInternalError(ctx, "validate template", err, reqLog)
	}
}

// handleListTemplates returns the known template names in sorted order.
func (n *NotificationAPIController) handleListTemplates(ctx *gin.Context) {
	apiresponses.RespondOK(ctx, TemplateListResponse{Templates: n.store.ListAvailable()})
}

// handleClearTemplateCache evicts all cached template content, forcing the
// next lookups back to the backing store.
func (n *NotificationAPIController) handleClearTemplateCache(ctx *gin.Context) {
	reqLog := system.GetReqLogger(ctx, n.log)

	n.store.ClearCache()
	n.recorder.Record(audit.NewEvent(audit.EventTemplateCacheCleared))

	reqLog.Infow("Template cache cleared")
	apiresponses.RespondNoContent(ctx)
}
