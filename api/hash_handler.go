package api

import (
	"crypto/md5"
	"crypto/sha1"
	"crypto/sha256"
	"crypto/sha512"
	"encoding/hex"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"

	"github.com/rpupo63/portfolio-site-backend/errs"
)

type hashHandler struct {
	responder Responder
	logger    zerolog.Logger
}

func newHashHandler() hashHandler {
	logger := loggerFor("hashHandler")

	return hashHandler{
		responder: NewResponder(logger),
		logger:    logger,
	}
}

type hashRequest struct {
	Text      string `json:"text"`
	Algorithm string `json:"algorithm"`
}

type hashResponse struct {
	Digest    string `json:"digest"`
	Algorithm string `json:"algorithm"`
}

// hashText digests the submitted text with the requested algorithm. Anything
// outside the allow-list silently falls back to sha256; the response always
// names the algorithm actually used.
func (h hashHandler) hashText() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req hashRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			h.responder.WriteError(w, errs.NewMalformedPayloadError("hash", err))
			return
		}

		digest, algorithm := digestText(req.Algorithm, []byte(req.Text))
		h.responder.WriteJSON(w, hashResponse{
			Digest:    digest,
			Algorithm: algorithm,
		})
	}
}

func digestText(algorithm string, text []byte) (string, string) {
	switch algorithm {
	case "sha1":
		sum := sha1.Sum(text)
		return hex.EncodeToString(sum[:]), "sha1"
	case "sha384":
		sum := sha512.Sum384(text)
		return hex.EncodeToString(sum[:]), "sha384"
	case "sha512":
		sum := sha512.Sum512(text)
		return hex.EncodeToString(sum[:]), "sha512"
	case "md5":
		sum := md5.Sum(text)
		return hex.EncodeToString(sum[:]), "md5"
	default:
		sum := sha256.Sum256(text)
		return hex.EncodeToString(sum[:]), "sha256"
	}
}
