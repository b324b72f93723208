package protocol

import (
	"bytes"
	"encoding/json"
	"fmt"

	apperrors "diagonator/internal/platform/errors"
)

// DecodeError keeps the raw payload that could not be decoded.
type DecodeError struct {
	Raw    string
	Reason string
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%s: %s: %s", apperrors.ErrProtocol, e.Reason, e.Raw)
}

func (e *DecodeError) Unwrap() error { return apperrors.ErrProtocol }

type envelope struct {
	Type *string `json:"type"`
}

func EncodeRequest(req Request) ([]byte, error) {
	if req == nil {
		return nil, fmt.Errorf("%w: nil request", apperrors.ErrProtocol)
	}
	return encodeTagged(req.RequestType(), req)
}

func EncodeResponse(resp Response) ([]byte, error) {
	if resp == nil {
		return nil, fmt.Errorf("%w: nil response", apperrors.ErrProtocol)
	}
	return encodeTagged(resp.ResponseType(), resp)
}

func DecodeRequest(data []byte) (Request, error) {
	tag, err := readTag(data)
	if err != nil {
		return nil, err
	}
	var req Request
	switch tag {
	case "StartSession":
		req = StartSession{}
	case "EndSession":
		req = EndSession{}
	case "GetInfo":
		req = GetInfo{}
	case "GetRemainingTime":
		req = GetRemainingTime{}
	case "UnlockTimer":
		req = UnlockTimer{}
	case "LockTimer":
		req = LockTimer{}
	case "AddRequirement":
		var v AddRequirement
		if err := decodeBody(data, &v); err != nil {
			return nil, err
		}
		req = v
	case "CompleteRequirement":
		var v CompleteRequirement
		if err := decodeBody(data, &v); err != nil {
			return nil, err
		}
		req = v
	case "Deactivate":
		var v Deactivate
		if err := decodeBody(data, &v); err != nil {
			return nil, err
		}
		req = v
	default:
		return nil, &DecodeError{Raw: string(data), Reason: fmt.Sprintf("unrecognized request type %q", tag)}
	}
	return req, nil
}

func DecodeResponse(data []byte) (Response, error) {
	tag, err := readTag(data)
	if err != nil {
		return nil, err
	}
	switch tag {
	case "Success":
		return Success{}, nil
	case "Error":
		var v Error
		if err := decodeBody(data, &v); err != nil {
			return nil, err
		}
		return v, nil
	case "Info":
		var v Info
		if err := decodeBody(data, &v); err != nil {
			return nil, err
		}
		if err := v.Info.Validate(); err != nil {
			return nil, &DecodeError{Raw: string(data), Reason: err.Error()}
		}
		return v, nil
	default:
		return nil, &DecodeError{Raw: string(data), Reason: fmt.Sprintf("unrecognized response type %q", tag)}
	}
}

func encodeTagged(tag string, v any) ([]byte, error) {
	body, err := json.Marshal(v)
	if err != nil {
		return nil, fmt.Errorf("marshal %s: %w", tag, err)
	}
	head, err := json.Marshal(envelope{Type: &tag})
	if err != nil {
		return nil, fmt.Errorf("marshal %s tag: %w", tag, err)
	}
	body = bytes.TrimSpace(body)
	if len(body) <= 2 {
		return head, nil
	}
	// splice {"type":"X"} and {...fields} into a single object
	out := make([]byte, 0, len(head)+len(body))
	out = append(out, head[:len(head)-1]...)
	out = append(out, ',')
	out = append(out, body[1:]...)
	return out, nil
}

func readTag(data []byte) (string, error) {
	var env envelope
	if err := json.Unmarshal(data, &env); err != nil {
		return "", &DecodeError{Raw: string(data), Reason: err.Error()}
	}
	if env.Type == nil {
		return "", &DecodeError{Raw: string(data), Reason: "missing type tag"}
	}
	return *env.Type, nil
}

func decodeBody(data []byte, v any) error {
	if err := json.Unmarshal(data, v); err != nil {
		return &DecodeError{Raw: string(data), Reason: err.Error()}
	}
	return nil
}
