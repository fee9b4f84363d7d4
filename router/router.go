// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"log/slog"
	"net/http"

	"github.com/danielhkuo/socialnet/auth"
	"github.com/danielhkuo/socialnet/cliparse"
	"github.com/danielhkuo/socialnet/handlers"
	"github.com/danielhkuo/socialnet/middleware"
	"github.com/danielhkuo/socialnet/models"
	"github.com/danielhkuo/socialnet/service"
	"github.com/danielhkuo/socialnet/store"
)

func NewRouter(st *store.Store, tokens *auth.TokenIssuer, cfg cliparse.Config) http.Handler {
	mux := http.NewServeMux()
	p := cfg.APIPrefix

	// Initialize engines and handlers
	accounts := service.NewAccounts(st, tokens)
	accountHandler := handlers.NewAccountHandler(accounts)
	groupHandler := handlers.NewGroupHandler(service.NewGroups(st))
	eventHandler := handlers.NewEventHandler(service.NewEvents(st))
	discussionHandler := handlers.NewDiscussionHandler(service.NewDiscussions(st))
	mediaHandler := handlers.NewMediaHandler(service.NewMedia(st))
	pollHandler := handlers.NewPollHandler(service.NewPolls(st))
	ticketHandler := handlers.NewTicketHandler(service.NewTickets(st))
	addonHandler := handlers.NewAddonHandler(service.NewAddons(st))

	public := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(h))
	}
	requireAuth := middleware.RequireAuth(accounts)
	authed := func(pattern string, h http.HandlerFunc) {
		mux.HandleFunc(pattern, middleware.WithLogging(requireAuth(h)))
	}

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		if err := st.Ping(r.Context()); err != nil {
			slog.Error("health check failed", "error", err)
			middleware.ErrorResponse(w, http.StatusServiceUnavailable, "Database unavailable")
			return
		}
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Accounts
	public("POST "+p+"/auth/register", accountHandler.Register)
	public("POST "+p+"/auth/token", accountHandler.Token)
	authed("GET "+p+"/users/me", accountHandler.Me)
	authed("GET "+p+"/users/{user_id}", accountHandler.GetUser)

	// Groups and memberships
	authed("POST "+p+"/groups", groupHandler.CreateGroup)
	authed("GET "+p+"/groups", groupHandler.ListGroups)
	authed("GET "+p+"/groups/{group_id}", groupHandler.GetGroup)
	authed("POST "+p+"/groups/{group_id}/members", groupHandler.AddMember)
	authed("PATCH "+p+"/groups/{group_id}/members/{user_id}", groupHandler.UpdateMember)
	authed("DELETE "+p+"/groups/{group_id}/members/{user_id}", groupHandler.RemoveMember)

	// Events
	authed("POST "+p+"/events", eventHandler.CreateEvent)
	authed("GET "+p+"/events", eventHandler.ListEvents)
	authed("GET "+p+"/events/{event_id}", eventHandler.GetEvent)
	authed("POST "+p+"/events/{event_id}/organizers", eventHandler.AddOrganizer)
	authed("POST "+p+"/events/{event_id}/participants", eventHandler.AddParticipant)
	authed("DELETE "+p+"/events/{event_id}/participants/{user_id}", eventHandler.RemoveParticipant)

	// Discussions
	authed("POST "+p+"/discussions", discussionHandler.CreateThread)
	authed("GET "+p+"/discussions/{thread_id}", discussionHandler.GetThread)
	authed("POST "+p+"/discussions/{thread_id}/messages", discussionHandler.PostMessage)
	authed("GET "+p+"/discussions/{thread_id}/messages", discussionHandler.ListMessages)

	// Media
	authed("POST "+p+"/media/events/{event_id}/albums", mediaHandler.CreateAlbum)
	authed("GET "+p+"/media/events/{event_id}/albums", mediaHandler.ListAlbums)
	authed("POST "+p+"/media/albums/{album_id}/photos", mediaHandler.AddPhoto)
	authed("GET "+p+"/media/albums/{album_id}/photos", mediaHandler.ListPhotos)
	authed("POST "+p+"/media/photos/{photo_id}/comments", mediaHandler.AddComment)
	authed("GET "+p+"/media/photos/{photo_id}/comments", mediaHandler.ListComments)

	// Polls
	authed("POST "+p+"/events/{event_id}/polls", pollHandler.CreatePoll)
	authed("GET "+p+"/events/{event_id}/polls", pollHandler.ListPolls)
	authed("GET "+p+"/polls/{poll_id}", pollHandler.GetPoll)
	authed("POST "+p+"/polls/{poll_id}/votes", pollHandler.SubmitVotes)
	authed("POST "+p+"/polls/{poll_id}/close", pollHandler.ClosePoll)

	// Ticketing (purchase is public)
	authed("POST "+p+"/tickets/events/{event_id}/types", ticketHandler.CreateTicketType)
	authed("GET "+p+"/tickets/events/{event_id}/types", ticketHandler.ListTicketTypes)
	public("POST "+p+"/tickets/types/{ticket_type_id}/purchase", ticketHandler.PurchaseTicket)

	// Shopping list and carpooling
	authed("POST "+p+"/addons/events/{event_id}/shopping-items", addonHandler.AddShoppingItem)
	authed("GET "+p+"/addons/events/{event_id}/shopping-items", addonHandler.ListShoppingItems)
	authed("POST "+p+"/addons/events/{event_id}/carpools", addonHandler.CreateCarpoolOffer)
	authed("GET "+p+"/addons/events/{event_id}/carpools", addonHandler.ListCarpoolOffers)

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{Message: "My Social Networks API ready"})
	})

	return middleware.CORS(cfg.AllowedOrigins)(mux)
}
