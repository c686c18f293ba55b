package rest

import (
	"fmt"
	"net/http"
	"strconv"

	"custody/core"
	"custody/handler/param"
	"custody/handler/render"
	"custody/handler/views"

	"github.com/go-chi/chi"
)

const (
	defaultLimit = 100
	maxLimit     = 500
)

func notificationsHandler(notifications core.NotificationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var query struct {
			From  int64 `json:"from"`
			Limit int   `json:"limit"`
		}
		if err := param.Query(r, &query); err != nil {
			render.Error(w, err)
			return
		}

		if query.Limit <= 0 {
			query.Limit = defaultLimit
		} else if query.Limit > maxLimit {
			query.Limit = maxLimit
		}

		list, err := notifications.ListNotifications(r.Context(), query.From, query.Limit)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, views.NotificationsOf(list, query.From))
	}
}

func notificationHandler(notifications core.NotificationStore) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil {
			render.Error(w, fmt.Errorf("notification id: %v: %w", err, core.ErrInvalidArgument))
			return
		}

		notification, err := notifications.FindNotification(r.Context(), id)
		if err != nil {
			render.Error(w, err)
			return
		}

		render.JSON(w, notification)
	}
}
