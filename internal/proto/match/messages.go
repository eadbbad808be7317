// Package match holds the wire types and gRPC bindings of match.v1.MatchService.
// Messages travel as JSON (see CodecName).
package match

// Profile is a profile as shown to clients. BirthDate is YYYY-MM-DD; Age is
// derived by the server and ignored on input.
type Profile struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Gender    string `json:"gender"`
	OS        string `json:"os"`
	BirthDate string `json:"birth_date,omitempty"`
	Age       int32  `json:"age,omitempty"`
	Bio       string `json:"bio,omitempty"`
	Image     string `json:"image,omitempty"`
}

func (x *Profile) GetID() string {
	if x == nil {
		return ""
	}
	return x.ID
}

type UpsertProfileRequest struct {
	Profile *Profile `json:"profile"`
}

func (x *UpsertProfileRequest) GetProfile() *Profile {
	if x == nil {
		return nil
	}
	return x.Profile
}

type UpsertProfileResponse struct {
	Profile *Profile `json:"profile"`
}

type GetProfileRequest struct {
	UserID string `json:"user_id"`
}

func (x *GetProfileRequest) GetUserID() string {
	if x == nil {
		return ""
	}
	return x.UserID
}

type GetProfileResponse struct {
	Profile *Profile `json:"profile"`
}

type StartSessionRequest struct {
	ViewerUserID string `json:"viewer_user_id"`
	// Limit caps the pool; 0 uses the server default.
	Limit int32 `json:"limit,omitempty"`
}

func (x *StartSessionRequest) GetViewerUserID() string {
	if x == nil {
		return ""
	}
	return x.ViewerUserID
}

func (x *StartSessionRequest) GetLimit() int32 {
	if x == nil {
		return 0
	}
	return x.Limit
}

type StartSessionResponse struct {
	SessionID  string     `json:"session_id"`
	Candidates []*Profile `json:"candidates"`
	// Degraded is set when the candidate lookup failed and the pool is empty.
	Degraded bool   `json:"degraded,omitempty"`
	Warning  string `json:"warning,omitempty"`
}

type DecideRequest struct {
	SessionID string `json:"session_id"`
	// Direction is "like" or "pass".
	Direction string `json:"direction"`
}

func (x *DecideRequest) GetSessionID() string {
	if x == nil {
		return ""
	}
	return x.SessionID
}

func (x *DecideRequest) GetDirection() string {
	if x == nil {
		return ""
	}
	return x.Direction
}

type DecideResponse struct {
	Consumed  *Profile `json:"consumed"`
	Matched   bool     `json:"matched"`
	Match     *Profile `json:"match,omitempty"`
	Position  int32    `json:"position"`
	Remaining int32    `json:"remaining"`
	Exhausted bool     `json:"exhausted"`
	// Warning reports a like that was not confirmed durable.
	Warning string `json:"warning,omitempty"`
}

type EndSessionRequest struct {
	SessionID string `json:"session_id"`
}

func (x *EndSessionRequest) GetSessionID() string {
	if x == nil {
		return ""
	}
	return x.SessionID
}

type EndSessionResponse struct{}

type GetRosterRequest struct {
	ViewerUserID string `json:"viewer_user_id"`
}

func (x *GetRosterRequest) GetViewerUserID() string {
	if x == nil {
		return ""
	}
	return x.ViewerUserID
}

type GetRosterResponse struct {
	Matches  []*Profile `json:"matches"`
	Degraded bool       `json:"degraded,omitempty"`
	Warning  string     `json:"warning,omitempty"`
}
