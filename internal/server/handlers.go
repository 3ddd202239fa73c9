package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"

	"github.com/agbru/rsacalc/internal/bigint"
	"github.com/agbru/rsacalc/internal/codec"
	apperrors "github.com/agbru/rsacalc/internal/errors"
	"github.com/agbru/rsacalc/internal/keys"
	"github.com/agbru/rsacalc/internal/logging"
	"github.com/agbru/rsacalc/internal/numtheory"
)

var errBadRequest = errors.New("bad request")

type keysRequest struct {
	Digits int    `json:"digits"`
	Seed   uint64 `json:"seed"`
}

type keysResponse struct {
	Public        string `json:"public"`
	Secret        string `json:"secret"`
	ModulusDigits int    `json:"modulus_digits"`
}

type encryptRequest struct {
	Public    string `json:"public"`
	Plaintext string `json:"plaintext"`
}

type encryptResponse struct {
	Ciphertext string `json:"ciphertext"`
	Blocks     int    `json:"blocks"`
}

type decryptRequest struct {
	Secret     string `json:"secret"`
	Ciphertext string `json:"ciphertext"`
}

type decryptResponse struct {
	Plaintext string `json:"plaintext"`
}

type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) handleKeys(w http.ResponseWriter, r *http.Request) {
	var req keysRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	if req.Digits == 0 {
		req.Digits = DefaultKeygenDigits
	}
	if req.Digits < keys.MinDigits || req.Digits > s.cfg.MaxDigits {
		s.writeError(w, fmt.Errorf("%w: digits must be in [%d, %d]", errBadRequest, keys.MinDigits, s.cfg.MaxDigits))
		return
	}

	ctx, span := tracer.Start(r.Context(), "server.keys")
	defer span.End()
	span.SetAttributes(attribute.Int("rsacalc.digits", req.Digits))
	ctx, cancel := context.WithTimeout(ctx, s.cfg.KeygenTimeout)
	defer cancel()

	gen := keys.NewGenerator(req.Seed, s.logger)
	gen.MaxKeyAttempts = s.cfg.MaxKeyAttempts
	gen.Search.OnCandidate = s.metrics.engine.ObserveCandidate

	start := time.Now()
	pair, err := gen.Generate(ctx, req.Digits)
	s.metrics.engine.ObserveKeygen(time.Since(start), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.writeError(w, err)
		return
	}
	pub, _ := pair.Public.MarshalText()
	sec, _ := pair.Secret.MarshalText()
	writeJSON(w, http.StatusOK, keysResponse{
		Public:        string(pub),
		Secret:        string(sec),
		ModulusDigits: pair.Public.N.Digits(),
	})
}

func (s *Server) handleEncrypt(w http.ResponseWriter, r *http.Request) {
	var req encryptRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	pk, err := keys.ParsePublic([]byte(req.Public))
	if err != nil {
		s.writeError(w, apperrors.MalformedInputError{Source: "public", Cause: err})
		return
	}
	plaintext, err := codec.DecodeBase64(req.Plaintext)
	if err != nil {
		s.writeError(w, apperrors.MalformedInputError{Source: "plaintext", Cause: err})
		return
	}

	ctx, span := tracer.Start(r.Context(), "server.encrypt")
	defer span.End()
	span.SetAttributes(
		attribute.Int("rsacalc.plaintext_bytes", len(plaintext)),
		attribute.Int("rsacalc.fragment_size", pk.FragmentSize),
	)

	start := time.Now()
	ct, err := s.codec().Encrypt(ctx, plaintext, pk)
	s.metrics.engine.ObserveCodec(codec.DirectionEncrypt, time.Since(start), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, encryptResponse{
		Ciphertext: codec.EncodeBase64(ct),
		Blocks:     codec.BlockCount(len(plaintext), pk.Params),
	})
}

func (s *Server) handleDecrypt(w http.ResponseWriter, r *http.Request) {
	var req decryptRequest
	if err := decodeJSON(r, &req); err != nil {
		s.writeError(w, err)
		return
	}
	sk, err := keys.ParseSecret([]byte(req.Secret))
	if err != nil {
		s.writeError(w, apperrors.MalformedInputError{Source: "secret", Cause: err})
		return
	}
	ct, err := codec.DecodeBase64(req.Ciphertext)
	if err != nil {
		s.writeError(w, err)
		return
	}

	ctx, span := tracer.Start(r.Context(), "server.decrypt")
	defer span.End()
	span.SetAttributes(attribute.Int("rsacalc.ciphertext_bytes", len(ct)))

	start := time.Now()
	pt, err := s.codec().Decrypt(ctx, ct, sk)
	s.metrics.engine.ObserveCodec(codec.DirectionDecrypt, time.Since(start), err)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		s.writeError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, decryptResponse{Plaintext: codec.EncodeBase64(pt)})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMetrics(w http.ResponseWriter, r *http.Request) {
	s.metrics.WritePrometheus(w, r)
}

var errMethodNotAllowed = errors.New("method not allowed")

func (s *Server) codec() *codec.Codec {
	return &codec.Codec{
		Workers: s.cfg.Workers,
		OnBlock: s.metrics.engine.ObserveBlock,
		Logger:  s.logger,
	}
}

func decodeJSON(r *http.Request, dst any) error {
	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			return err
		}
		return fmt.Errorf("%w: invalid JSON body: %v", errBadRequest, err)
	}
	return nil
}

// statusFor maps engine and request errors to HTTP status codes.
func statusFor(err error) int {
	var tooLarge *http.MaxBytesError
	switch {
	case errors.Is(err, errMethodNotAllowed):
		return http.StatusMethodNotAllowed
	case errors.As(err, &tooLarge):
		return http.StatusRequestEntityTooLarge
	case errors.Is(err, errBadRequest), errors.Is(err, keys.ErrInvalidSize), apperrors.IsMalformed(err):
		return http.StatusBadRequest
	case errors.Is(err, bigint.ErrCapacityExceeded):
		return http.StatusUnprocessableEntity
	case errors.Is(err, numtheory.ErrPrimeSearchExhausted), errors.Is(err, keys.ErrKeyDerivationFailed):
		return http.StatusServiceUnavailable
	case errors.Is(err, context.DeadlineExceeded):
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := statusFor(err)
	if status >= http.StatusInternalServerError {
		s.logger.Error("request failed", err, logging.Int("status", status))
	} else {
		s.logger.Debug("request rejected", logging.Err(err), logging.Int("status", status))
	}
	writeJSON(w, status, errorResponse{Error: err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
