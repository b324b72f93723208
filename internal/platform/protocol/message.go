// Package protocol defines the request and response messages exchanged with
// the diagonator server. Both are closed sets: every variant is a struct in
// this package and the type tag is written to the "type" field on the wire.
package protocol

// Request is implemented only by the request variants below.
type Request interface {
	RequestType() string
	isRequest()
}

type StartSession struct{}

type EndSession struct{}

type GetInfo struct{}

type GetRemainingTime struct{}

type AddRequirement struct {
	Name string    `json:"name"`
	Due  TimeOfDay `json:"due"`
}

type CompleteRequirement struct {
	ID uint64 `json:"id"`
}

// Deactivate suspends the lock for Duration seconds.
type Deactivate struct {
	Duration int64 `json:"duration"`
}

type UnlockTimer struct{}

type LockTimer struct{}

func (StartSession) RequestType() string        { return "StartSession" }
func (EndSession) RequestType() string          { return "EndSession" }
func (GetInfo) RequestType() string             { return "GetInfo" }
func (GetRemainingTime) RequestType() string    { return "GetRemainingTime" }
func (AddRequirement) RequestType() string      { return "AddRequirement" }
func (CompleteRequirement) RequestType() string { return "CompleteRequirement" }
func (Deactivate) RequestType() string          { return "Deactivate" }
func (UnlockTimer) RequestType() string         { return "UnlockTimer" }
func (LockTimer) RequestType() string           { return "LockTimer" }

func (StartSession) isRequest()        {}
func (EndSession) isRequest()          {}
func (GetInfo) isRequest()             {}
func (GetRemainingTime) isRequest()    {}
func (AddRequirement) isRequest()      {}
func (CompleteRequirement) isRequest() {}
func (Deactivate) isRequest()          {}
func (UnlockTimer) isRequest()         {}
func (LockTimer) isRequest()           {}

// Response is implemented only by Success, Info and Error.
type Response interface {
	ResponseType() string
	isResponse()
}

type Success struct{}

type Info struct {
	Info SessionInfo `json:"info"`
}

// Error is the server's refusal; Msg is shown to the operator verbatim.
type Error struct {
	Msg string `json:"msg"`
}

func (Success) ResponseType() string { return "Success" }
func (Info) ResponseType() string    { return "Info" }
func (Error) ResponseType() string   { return "Error" }

func (Success) isResponse() {}
func (Info) isResponse()    {}
func (Error) isResponse()   {}
