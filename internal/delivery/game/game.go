package game

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"nogo/internal/bootstrap"
	"nogo/internal/domain/game"
	errs "nogo/internal/errors"
	"nogo/internal/httpresponse"
	"nogo/internal/render"
	gameuc "nogo/internal/usecase/game"
	"nogo/internal/utils"
)

type GameHandler struct {
	cfg    bootstrap.Config
	log    *zap.SugaredLogger
	gameUC *gameuc.GameUseCase
	hub    *hub
}

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

func NewGameHandler(cfg bootstrap.Config, log *zap.SugaredLogger, gameUC *gameuc.GameUseCase) *GameHandler {
	return &GameHandler{
		cfg:    cfg,
		log:    log,
		gameUC: gameUC,
		hub:    newHub(log),
	}
}

func (g *GameHandler) Routes(r chi.Router) {
	r.Post("/games", g.HandleNewGame)
	r.Post("/games/load", g.HandleLoadGame)
	r.Get("/games/{id}", g.HandleGetGame)
	r.Post("/games/{id}/moves", g.HandleMove)
	r.Post("/games/{id}/computer", g.HandleComputerMove)
	r.Get("/games/{id}/save", g.HandleSave)
	r.Get("/games/{id}/pdf", g.HandlePDF)
	r.Get("/games/{id}/ws", g.HandleSubscribe)
	r.Get("/archive", g.HandleArchive)
	r.Get("/archive/{id}", g.HandleArchivedGame)
}

// statusOf maps domain errors to HTTP status codes.
func statusOf(err error) int {
	switch {
	case errors.Is(err, errs.ErrGameNotFound):
		return http.StatusNotFound
	case errors.Is(err, errs.ErrInvalidMove),
		errors.Is(err, errs.ErrMalformedSave),
		errors.Is(err, errs.ErrDimensionOutOfBounds),
		errors.Is(err, errs.ErrInvalidPlayerType):
		return http.StatusBadRequest
	case errors.Is(err, errs.ErrGameOver),
		errors.Is(err, errs.ErrNotComputerTurn),
		errors.Is(err, errs.ErrNotHumanTurn),
		errors.Is(err, errs.ErrBoardFull):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

func (g *GameHandler) writeError(w http.ResponseWriter, err error) {
	status := statusOf(err)
	if status == http.StatusInternalServerError {
		g.log.Errorw("request failed", "error", err)
		httpresponse.WriteErrorWithStatus(w, status, errs.ErrInternal.Error())
		return
	}
	g.log.Debugw("request rejected", "status", status, "error", err)
	httpresponse.WriteErrorWithStatus(w, status, err.Error())
}

func (g *GameHandler) HandleNewGame(w http.ResponseWriter, r *http.Request) {
	var req game.CreateGameRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Debugw("bad new game request", "error", err)
		httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	rec, err := g.gameUC.CreateGame(r.Context(), req)
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, rec)
}

// HandleLoadGame starts a game from a save file sent as the request body.
// Player types come from the black and white query parameters and default
// to human.
func (g *GameHandler) HandleLoadGame(w http.ResponseWriter, r *http.Request) {
	body, err := utils.ReadRequestBody(r)
	if err != nil {
		httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, "failed to read request body")
		return
	}

	black := playerTypeParam(r, "black")
	white := playerTypeParam(r, "white")
	rec, err := g.gameUC.LoadGame(r.Context(), string(body), black, white)
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusCreated, rec)
}

func playerTypeParam(r *http.Request, name string) game.PlayerType {
	if v := r.URL.Query().Get(name); v != "" {
		return game.PlayerType(v)
	}
	return game.Human
}

func (g *GameHandler) HandleGetGame(w http.ResponseWriter, r *http.Request) {
	rec, err := g.gameUC.GetGame(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, rec)
}

func (g *GameHandler) HandleMove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req game.MoveRequest
	if err := utils.DecodeJSONRequest(r, &req); err != nil {
		g.log.Debugw("bad move request", "game_id", id, "error", err)
		httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, httpresponse.MALFORMEDJSON_errorDesc)
		return
	}

	state, err := g.gameUC.ApplyMove(r.Context(), id, req)
	if err != nil {
		g.writeError(w, err)
		return
	}
	g.hub.broadcast(id, state)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleComputerMove(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	state, err := g.gameUC.ComputerMove(r.Context(), id)
	if err != nil {
		g.writeError(w, err)
		return
	}
	g.hub.broadcast(id, state)
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, state)
}

func (g *GameHandler) HandleSave(w http.ResponseWriter, r *http.Request) {
	text, err := g.gameUC.SaveText(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		g.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write([]byte(text))
}

func (g *GameHandler) HandlePDF(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	rec, err := g.gameUC.GetGame(r.Context(), id)
	if err != nil {
		g.writeError(w, err)
		return
	}
	w.Header().Set("Content-Type", "application/pdf")
	if err := render.PDF(w, "NoGo "+id, rec.Snapshot); err != nil {
		g.log.Errorw("failed to render pdf", "game_id", id, "error", err)
	}
}

// HandleSubscribe upgrades to a websocket that receives a GameStateResponse
// after every move. Clients may also send MoveRequest messages to play.
func (g *GameHandler) HandleSubscribe(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if _, err := g.gameUC.GetGame(r.Context(), id); err != nil {
		g.writeError(w, err)
		return
	}

	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		g.log.Warnw("websocket upgrade failed", "game_id", id, "error", err)
		return
	}
	sub := g.hub.subscribe(id, conn)
	g.log.Infow("websocket subscriber joined", "game_id", id, "subscribers", g.hub.count(id))

	defer func() {
		g.hub.unsubscribe(id, sub)
		_ = conn.Close()
	}()

	for {
		var req game.MoveRequest
		if err := conn.ReadJSON(&req); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				g.log.Warnw("websocket read failed", "game_id", id, "error", err)
			}
			return
		}

		state, err := g.gameUC.ApplyMove(r.Context(), id, req)
		if err != nil {
			if sendErr := sub.send(httpresponse.ErrorResponse{ErrorDescription: err.Error()}); sendErr != nil {
				return
			}
			continue
		}
		g.hub.broadcast(id, state)
	}
}

func (g *GameHandler) HandleArchive(w http.ResponseWriter, r *http.Request) {
	pageNum := 1
	if v := r.URL.Query().Get("page"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			httpresponse.WriteErrorWithStatus(w, http.StatusBadRequest, "page must be a positive integer")
			return
		}
		pageNum = n
	}

	resp, err := g.gameUC.ListArchive(r.Context(), pageNum)
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, resp)
}

func (g *GameHandler) HandleArchivedGame(w http.ResponseWriter, r *http.Request) {
	rec, err := g.gameUC.GetArchived(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		g.writeError(w, err)
		return
	}
	httpresponse.WriteResponseWithStatus(w, http.StatusOK, rec)
}
