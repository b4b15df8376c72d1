package server

import (
	"errors"
	"log/slog"
	"math/rand"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/pdrpinto/gridnav"
	"github.com/pdrpinto/gridnav/internal/render"
	"github.com/pdrpinto/gridnav/internal/session"
)

var errSessionNotFound = errors.New("session not found")

// entry serializes all access to one session, so its grid never changes
// while a search over it is running.
type entry struct {
	mu      sync.Mutex
	sess    *session.Session
	stepper *gridnav.Stepper
}

// SessionController manages grid sessions keyed by uuid.
type SessionController struct {
	cfg      session.Config
	cellSize int
	logger   *slog.Logger

	mu       sync.Mutex
	seeds    *rand.Rand
	sessions map[uuid.UUID]*entry
}

// NewSessionController creates a controller whose sessions use cfg. Seeds for
// sessions created without one are drawn from seed.
func NewSessionController(cfg session.Config, cellSize int, seed int64, logger *slog.Logger) *SessionController {
	if logger == nil {
		logger = slog.Default()
	}
	if seed == 0 {
		seed = time.Now().UnixNano()
	}
	return &SessionController{
		cfg:      cfg,
		cellSize: cellSize,
		logger:   logger,
		seeds:    rand.New(rand.NewSource(seed)),
		sessions: make(map[uuid.UUID]*entry),
	}
}

// Register registers the session routes.
func (sc *SessionController) Register(route *gin.RouterGroup) {
	sessions := route.Group("/sessions")
	{
		sessions.POST("", sc.create)
		sessions.GET("/:ID", sc.get)
		sessions.DELETE("/:ID", sc.delete)
		sessions.POST("/:ID/generate", sc.generate)
		sessions.PUT("/:ID/start", sc.setStart)
		sessions.DELETE("/:ID/start", sc.clearStart)
		sessions.PUT("/:ID/end", sc.setEnd)
		sessions.DELETE("/:ID/end", sc.clearEnd)
		sessions.PUT("/:ID/mode", sc.setMode)
		sessions.POST("/:ID/path", sc.findPath)
		sessions.POST("/:ID/step", sc.step)
	}
}

func (sc *SessionController) create(ctx *gin.Context) {
	var request CreateSessionRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	sc.mu.Lock()
	seed := request.Seed
	if seed == 0 {
		seed = sc.seeds.Int63()
	}
	sc.mu.Unlock()

	sess, err := session.New(sc.cfg, seed, sc.logger)
	if err != nil {
		ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}

	id := uuid.New()
	e := &entry{sess: sess}
	response := sc.response(id, e)
	sc.mu.Lock()
	sc.sessions[id] = e
	sc.mu.Unlock()
	sc.logger.Info("session created", "id", id, "seed", seed)

	ctx.JSON(http.StatusCreated, response)
}

func (sc *SessionController) get(ctx *gin.Context) {
	sc.withEntry(ctx, func(id uuid.UUID, e *entry) {
		ctx.JSON(http.StatusOK, sc.response(id, e))
	})
}

func (sc *SessionController) delete(ctx *gin.Context) {
	id, ok := sc.parseID(ctx)
	if !ok {
		return
	}

	sc.mu.Lock()
	_, found := sc.sessions[id]
	delete(sc.sessions, id)
	sc.mu.Unlock()

	if !found {
		ctx.JSON(http.StatusNotFound, gin.H{"error": errSessionNotFound.Error()})
		return
	}
	ctx.Status(http.StatusNoContent)
}

func (sc *SessionController) generate(ctx *gin.Context) {
	var request GenerateRequest
	if ctx.Request.ContentLength > 0 {
		if err := ctx.ShouldBindJSON(&request); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
	}

	sc.withEntry(ctx, func(id uuid.UUID, e *entry) {
		var err error
		if request.Seed != 0 {
			err = e.sess.Regenerate(request.Seed)
		} else {
			err = e.sess.RegenerateNext()
		}
		if err != nil {
			ctx.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
			return
		}
		e.stepper = nil
		ctx.JSON(http.StatusOK, sc.response(id, e))
	})
}

func (sc *SessionController) setStart(ctx *gin.Context) {
	sc.setCell(ctx, (*session.Session).SetStart)
}

func (sc *SessionController) setEnd(ctx *gin.Context) {
	sc.setCell(ctx, (*session.Session).SetEnd)
}

func (sc *SessionController) clearStart(ctx *gin.Context) {
	sc.clearCell(ctx, (*session.Session).SetStart)
}

func (sc *SessionController) clearEnd(ctx *gin.Context) {
	sc.clearCell(ctx, (*session.Session).SetEnd)
}

func (sc *SessionController) setCell(ctx *gin.Context, set func(*session.Session, gridnav.Cell) error) {
	var request CellRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sc.withEntry(ctx, func(id uuid.UUID, e *entry) {
		if err := set(e.sess, gridnav.Cell{X: *request.X, Y: *request.Y}); err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		e.stepper = nil
		ctx.JSON(http.StatusOK, sc.response(id, e))
	})
}

func (sc *SessionController) clearCell(ctx *gin.Context, set func(*session.Session, gridnav.Cell) error) {
	sc.withEntry(ctx, func(id uuid.UUID, e *entry) {
		_ = set(e.sess, gridnav.Unset)
		e.stepper = nil
		ctx.JSON(http.StatusOK, sc.response(id, e))
	})
}

func (sc *SessionController) setMode(ctx *gin.Context) {
	var request ModeRequest
	if err := ctx.ShouldBindJSON(&request); err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	mode, err := gridnav.ParseMode(request.Mode)
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	sc.withEntry(ctx, func(id uuid.UUID, e *entry) {
		e.sess.SetMode(mode)
		e.stepper = nil
		ctx.JSON(http.StatusOK, sc.response(id, e))
	})
}

func (sc *SessionController) findPath(ctx *gin.Context) {
	sc.withEntry(ctx, func(id uuid.UUID, e *entry) {
		result, err := e.sess.FindPath()
		if err != nil {
			ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
			return
		}
		sc.logger.Info("path search", "id", id, "mode", e.sess.Mode(), "outcome", result.Outcome, "cost", result.Cost)
		ctx.JSON(http.StatusOK, sc.response(id, e))
	})
}

// step advances the session's stepper, starting a new one after any change
// to the grid, endpoints or mode.
func (sc *SessionController) step(ctx *gin.Context) {
	sc.withEntry(ctx, func(_ uuid.UUID, e *entry) {
		if e.stepper == nil {
			stepper, err := e.sess.NewStepper()
			if err != nil {
				ctx.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
				return
			}
			e.stepper = stepper
		}

		snapshot := e.stepper.Step()
		response := StepResponse{
			Step:      snapshot.StepIndex,
			Frontier:  render.Points(snapshot.Frontier),
			Finalized: render.Points(snapshot.Finalized),
			Done:      snapshot.Done,
			Found:     snapshot.Found,
			Path:      render.Points(snapshot.Path),
		}
		if snapshot.Current.IsSet() {
			response.Current = &render.Point{X: snapshot.Current.X, Y: snapshot.Current.Y}
		}
		ctx.JSON(http.StatusOK, response)
	})
}

func (sc *SessionController) parseID(ctx *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(ctx.Params.ByName("ID"))
	if err != nil {
		ctx.JSON(http.StatusBadRequest, gin.H{"error": "invalid session id"})
		return uuid.Nil, false
	}
	return id, true
}

// withEntry looks up the session named in the path and runs fn under its lock.
func (sc *SessionController) withEntry(ctx *gin.Context, fn func(uuid.UUID, *entry)) {
	id, ok := sc.parseID(ctx)
	if !ok {
		return
	}

	sc.mu.Lock()
	e, found := sc.sessions[id]
	sc.mu.Unlock()
	if !found {
		ctx.JSON(http.StatusNotFound, gin.H{"error": errSessionNotFound.Error()})
		return
	}

	e.mu.Lock()
	defer e.mu.Unlock()
	fn(id, e)
}

func (sc *SessionController) response(id uuid.UUID, e *entry) SessionResponse {
	report := render.NewReport(e.sess)
	report.CellSize = sc.cellSize
	return SessionResponse{ID: id, Report: report}
}
