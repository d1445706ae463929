package handler

import (
	"net/http"

	"github.com/google/uuid"

	"dcert/contracts/walletapi"
	"dcert/internal/backend/device"
	"dcert/internal/backend/models"
	id "dcert/pkg/domain"
	dErrors "dcert/pkg/domain-errors"
	"dcert/pkg/platform/audit"
	"dcert/pkg/requestcontext"
)

// Notify handles POST /v1/notifications: an issuer drops an encrypted notice
// into a holder's inbox.
func (h *Handler) Notify(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	var req walletapi.NotifyRequest
	if err := decodeJSON(r, &req); err != nil {
		WriteError(w, err)
		return
	}
	if req.HolderDID == "" || req.Kind == "" {
		WriteError(w, dErrors.New(dErrors.CodeBadRequest, "holder_did and kind are required"))
		return
	}

	notification := models.Notification{
		ID:        uuid.NewString(),
		HolderDID: req.HolderDID,
		Kind:      req.Kind,
		Envelope:  req.Envelope,
		CreatedAt: requestcontext.Now(ctx),
	}
	if err := h.inbox.Append(ctx, notification); err != nil {
		WriteError(w, err)
		return
	}

	h.logger.InfoContext(ctx, "notice delivered",
		"holder_did", req.HolderDID,
		"kind", req.Kind,
		"actor_did", requestcontext.ActorDID(ctx),
		"device", device.ParseUserAgent(requestcontext.UserAgent(ctx)),
		"client_ip", requestcontext.ClientIP(ctx),
		"request_id", requestcontext.RequestID(ctx),
	)
	h.audit(ctx, audit.Event{
		ActorDID:  requestcontext.ActorDID(ctx),
		HolderDID: id.DID(req.HolderDID),
		Action:    audit.ActionNoticeDelivered,
	})
	writeJSON(w, http.StatusCreated, toNotificationResponse(notification))
}

// Inbox handles GET /v1/notifications: the authenticated holder's inbox,
// newest first.
func (h *Handler) Inbox(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	actor := requestcontext.ActorDID(ctx)

	notifications, err := h.inbox.ListByHolder(ctx, actor.String())
	if err != nil {
		WriteError(w, err)
		return
	}

	out := make([]walletapi.NotificationResponse, 0, len(notifications))
	for _, notification := range notifications {
		out = append(out, toNotificationResponse(notification))
	}
	writeJSON(w, http.StatusOK, out)
}

func toNotificationResponse(notification models.Notification) walletapi.NotificationResponse {
	return walletapi.NotificationResponse{
		ID:        notification.ID,
		HolderDID: notification.HolderDID,
		Kind:      notification.Kind,
		Envelope:  notification.Envelope,
		CreatedAt: notification.CreatedAt,
	}
}
