package main

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/rs/zerolog/log"
	"golang.org/x/sync/errgroup"

	"github.com/fpang/profile-annotator/internal/annotate"
	"github.com/fpang/profile-annotator/internal/baseimage"
	"github.com/fpang/profile-annotator/internal/profile"
)

var validate = validator.New()

// Pointer fields so the validator can tell an absent key from a zero value.
type animalValues struct {
	Lobo    *int `json:"lobo" validate:"required"`
	Aguia   *int `json:"aguia" validate:"required"`
	Tubarao *int `json:"tubarao" validate:"required"`
	Gato    *int `json:"gato" validate:"required"`
}

func (v animalValues) toMap() map[string]int {
	return map[string]int{
		"lobo": *v.Lobo, "aguia": *v.Aguia, "tubarao": *v.Tubarao, "gato": *v.Gato,
	}
}

type brainValues struct {
	Pensante *int `json:"pensante" validate:"required"`
	Atuante  *int `json:"atuante" validate:"required"`
	Razao    *int `json:"razao" validate:"required"`
	Emocao   *int `json:"emocao" validate:"required"`
}

func (v brainValues) toMap() map[string]int {
	return map[string]int{
		"pensante": *v.Pensante, "atuante": *v.Atuante, "razao": *v.Razao, "emocao": *v.Emocao,
	}
}

type renderRequest struct {
	Animals *animalValues `json:"animals" validate:"required"`
	Brains  *brainValues  `json:"brains" validate:"required"`
}

type renderResponse struct {
	AnimalImage string `json:"animalImage"`
	BrainImage  string `json:"brainImage"`
}

type renderServer struct {
	loader *baseimage.Loader
}

func newRenderServer(loader *baseimage.Loader) *renderServer {
	return &renderServer{loader: loader}
}

// POST /api/profile-images
// Body: {"animals":{"lobo":40,"aguia":55,"tubarao":55,"gato":10},
//        "brains":{"pensante":20,"atuante":30,"razao":25,"emocao":25}}
//
// Values are rendered as given; the 0-100 percentage range is deliberately
// not enforced.
func (s *renderServer) handleProfileImages(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		httpError(w, http.StatusMethodNotAllowed, "method not allowed")
		return
	}

	var req renderRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httpError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}
	if err := validate.Struct(req); err != nil {
		httpError(w, http.StatusBadRequest, "missing or malformed dataset: "+validationDetail(err))
		return
	}

	animalDS, err := profile.NewDataset(profile.ShapeAnimal, req.Animals.toMap())
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}
	brainDS, err := profile.NewDataset(profile.ShapeBrain, req.Brains.toMap())
	if err != nil {
		httpError(w, http.StatusBadRequest, err.Error())
		return
	}

	resp, err := s.renderBoth(r.Context(), animalDS, brainDS)
	if err != nil {
		log.Error().Err(err).Msg("Profile render failed")
		httpError(w, http.StatusInternalServerError, err.Error())
		return
	}
	respondJSON(w, http.StatusOK, resp)
}

// renderBoth runs the two renders concurrently and joins all-or-nothing: if
// either fails, the other result is discarded and the first error is
// returned. Each render only reads its own inputs, so no coordination beyond
// the join is needed.
func (s *renderServer) renderBoth(ctx context.Context, animalDS, brainDS profile.Dataset) (*renderResponse, error) {
	var animalPNG, brainPNG []byte

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		animalPNG, err = s.renderOne(ctx, animalDS)
		return err
	})
	g.Go(func() error {
		var err error
		brainPNG, err = s.renderOne(ctx, brainDS)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return &renderResponse{
		AnimalImage: dataURI(animalPNG),
		BrainImage:  dataURI(brainPNG),
	}, nil
}

func (s *renderServer) renderOne(ctx context.Context, ds profile.Dataset) ([]byte, error) {
	base, err := s.loader.Load(ctx, ds.Shape)
	if err != nil {
		return nil, err
	}
	return annotate.Render(base, ds, annotate.Positions(ds.Shape), annotate.DefaultStyles)
}

func dataURI(pngBytes []byte) string {
	return "data:image/png;base64," + base64.StdEncoding.EncodeToString(pngBytes)
}

// validationDetail flattens the validator's error list into the offending
// field names, lowercased to match the JSON keys.
func validationDetail(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err.Error()
	}
	detail := ""
	for i, fe := range verrs {
		if i > 0 {
			detail += ", "
		}
		detail += fe.Namespace()
	}
	return detail
}
