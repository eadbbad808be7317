package match

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/oggyb/osmatch/internal/app"
	"github.com/oggyb/osmatch/internal/domain"
	"github.com/oggyb/osmatch/internal/engine"
	svcErr "github.com/oggyb/osmatch/internal/errors"
	pb "github.com/oggyb/osmatch/internal/proto/match"
)

const birthDateLayout = "2006-01-02"

// Service implements the Match gRPC API on top of the matching engine.
// It owns the live swipe sessions; the engine itself is stateless per viewer.
type Service struct {
	appCtx   *app.AppContext
	engine   *engine.Engine
	sessions *sessionRegistry

	pb.UnimplementedMatchServiceServer
}

// NewMatchService creates a Match service using the engine from AppContext.
func NewMatchService(appCtx *app.AppContext) *Service {
	return &Service{
		appCtx:   appCtx,
		engine:   appCtx.Engine,
		sessions: newSessionRegistry(),
	}
}

// UpsertProfile creates or replaces a profile document.
//
// Behavior:
//   - An empty id gets a new one.
//   - Gender accepts erkek/kadin and the male/female aliases.
//   - os is required; birth_date, if set, must be YYYY-MM-DD.
func (s *Service) UpsertProfile(ctx context.Context, req *pb.UpsertProfileRequest) (*pb.UpsertProfileResponse, error) {
	s.appCtx.Logger.Debug("UpsertProfile called", "id", req.GetProfile().GetID())

	in := req.GetProfile()
	if in == nil {
		return nil, svcErr.InvalidArgument("profile is required")
	}
	p, err := fromPB(in)
	if err != nil {
		return nil, svcErr.InvalidArgument("birth_date must be YYYY-MM-DD")
	}

	saved, err := s.engine.SaveProfile(ctx, p)
	if err != nil {
		s.appCtx.Logger.Error("SaveProfile failed", "id", p.ID, "err", err)
		return nil, svcErr.Map(err)
	}
	return &pb.UpsertProfileResponse{Profile: s.toPB(saved)}, nil
}

// GetProfile fetches a profile with a bounded wait. A miss and a timeout both
// answer NotFound, which clients treat as "start onboarding".
func (s *Service) GetProfile(ctx context.Context, req *pb.GetProfileRequest) (*pb.GetProfileResponse, error) {
	s.appCtx.Logger.Debug("GetProfile called", "user_id", req.GetUserID())

	if strings.TrimSpace(req.GetUserID()) == "" {
		return nil, svcErr.InvalidArgument("user_id is required")
	}
	p, err := s.engine.LoadViewer(ctx, domain.ProfileID(req.GetUserID()))
	if err != nil {
		return nil, svcErr.Map(err)
	}
	return &pb.GetProfileResponse{Profile: s.toPB(p)}, nil
}

// StartSession opens a swipe session over a fresh candidate pool.
//
// Behavior:
//   - Loads the viewer (bounded wait) and selects candidates of the opposite
//     gender on the same OS.
//   - Replaces the viewer's previous session; decisions on it then fail with
//     FailedPrecondition.
//   - A failed candidate lookup yields an empty, degraded session instead of
//     an error.
func (s *Service) StartSession(ctx context.Context, req *pb.StartSessionRequest) (*pb.StartSessionResponse, error) {
	s.appCtx.Logger.Debug("StartSession called", "viewer", req.GetViewerUserID(), "limit", req.GetLimit())

	if strings.TrimSpace(req.GetViewerUserID()) == "" {
		return nil, svcErr.InvalidArgument("viewer_user_id is required")
	}
	if req.GetLimit() < 0 {
		return nil, svcErr.InvalidArgument("limit must not be negative")
	}

	viewer, err := s.engine.LoadViewer(ctx, domain.ProfileID(req.GetViewerUserID()))
	if err != nil {
		return nil, svcErr.Map(err)
	}

	feed := s.engine.NewFeed(viewer, int(req.GetLimit()))
	s.sessions.replace(feed)

	session, err := feed.Refresh(ctx)
	resp := &pb.StartSessionResponse{}
	switch {
	case err == nil:
	case errors.Is(err, engine.ErrLookupFailure) && session != nil:
		s.appCtx.Logger.Warn("StartSession degraded", "viewer", viewer.ID, "err", err)
		resp.Degraded = true
		resp.Warning = "candidates are unavailable right now, try again"
	default:
		return nil, svcErr.Map(err)
	}

	if !s.sessions.track(feed, session) {
		return nil, svcErr.FailedPrecondition("session was superseded")
	}

	resp.SessionID = session.ID()
	resp.Candidates = s.toPBList(session.Pool())

	s.appCtx.Logger.Debug("StartSession result", "session_id", resp.SessionID, "candidates", len(resp.Candidates))
	return resp, nil
}

// Decide applies a like or pass to the profile under the session cursor.
// The session advances even when the like could not be stored; that case is
// reported through the warning field.
func (s *Service) Decide(ctx context.Context, req *pb.DecideRequest) (*pb.DecideResponse, error) {
	s.appCtx.Logger.Debug("Decide called", "session_id", req.GetSessionID(), "direction", req.GetDirection())

	dir, err := domain.ParseDirection(req.GetDirection())
	if err != nil {
		return nil, svcErr.InvalidArgument("direction must be like or pass")
	}
	session, ok := s.sessions.session(req.GetSessionID())
	if !ok {
		return nil, svcErr.FailedPrecondition("unknown or ended session")
	}

	out, err := s.engine.Decide(ctx, session, dir)
	if err != nil {
		return nil, svcErr.Map(err)
	}

	resp := &pb.DecideResponse{
		Consumed:  s.toPB(out.Consumed),
		Matched:   out.Match.Matched,
		Position:  int32(out.Position),
		Remaining: int32(session.Len() - out.Position),
		Exhausted: out.State == engine.StateExhausted,
	}
	if out.MatchedProfile != nil {
		resp.Match = s.toPB(*out.MatchedProfile)
	}
	if out.Warning != nil {
		resp.Warning = "your like was not saved"
	}

	s.appCtx.Logger.Debug("Decide result", "session_id", session.ID(), "matched", resp.Matched, "position", resp.Position)
	return resp, nil
}

// EndSession discards a session. Ending an unknown session is not an error.
func (s *Service) EndSession(ctx context.Context, req *pb.EndSessionRequest) (*pb.EndSessionResponse, error) {
	s.appCtx.Logger.Debug("EndSession called", "session_id", req.GetSessionID())
	s.sessions.end(req.GetSessionID())
	return &pb.EndSessionResponse{}, nil
}

// GetRoster recomputes the viewer's mutual matches, ordered by id.
// A failed lookup yields an empty, degraded roster.
func (s *Service) GetRoster(ctx context.Context, req *pb.GetRosterRequest) (*pb.GetRosterResponse, error) {
	s.appCtx.Logger.Debug("GetRoster called", "viewer", req.GetViewerUserID())

	if strings.TrimSpace(req.GetViewerUserID()) == "" {
		return nil, svcErr.InvalidArgument("viewer_user_id is required")
	}

	matches, err := s.engine.GetRoster(ctx, domain.ProfileID(req.GetViewerUserID()))
	if err != nil {
		if errors.Is(err, engine.ErrLookupFailure) {
			s.appCtx.Logger.Warn("GetRoster degraded", "viewer", req.GetViewerUserID(), "err", err)
			return &pb.GetRosterResponse{
				Matches:  []*pb.Profile{},
				Degraded: true,
				Warning:  "matches are unavailable right now, try again",
			}, nil
		}
		return nil, svcErr.Map(err)
	}

	s.appCtx.Logger.Debug("GetRoster result", "viewer", req.GetViewerUserID(), "match_count", len(matches))
	return &pb.GetRosterResponse{Matches: s.toPBList(matches)}, nil
}

func (s *Service) toPB(p domain.Profile) *pb.Profile {
	out := &pb.Profile{
		ID:     p.ID.String(),
		Name:   p.Name,
		Gender: string(p.Gender),
		OS:     p.OS,
		Bio:    p.Bio,
		Image:  p.Image,
	}
	if !p.BirthDate.IsZero() {
		out.BirthDate = p.BirthDate.Format(birthDateLayout)
		out.Age = int32(s.engine.AgeOf(p))
	}
	return out
}

func (s *Service) toPBList(ps []domain.Profile) []*pb.Profile {
	out := make([]*pb.Profile, 0, len(ps))
	for _, p := range ps {
		out = append(out, s.toPB(p))
	}
	return out
}

func fromPB(in *pb.Profile) (domain.Profile, error) {
	p := domain.Profile{
		ID:     domain.ProfileID(strings.TrimSpace(in.ID)),
		Name:   in.Name,
		Gender: domain.Gender(in.Gender),
		OS:     in.OS,
		Bio:    in.Bio,
		Image:  in.Image,
	}
	if in.BirthDate != "" {
		t, err := time.Parse(birthDateLayout, in.BirthDate)
		if err != nil {
			return domain.Profile{}, err
		}
		p.BirthDate = t
	}
	return p, nil
}
