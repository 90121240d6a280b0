// Package docs builds the OpenAPI (Swagger 2.0) documents published under
// /openapi/v{major}.json and registers them with swag, one instance per API
// version.
package docs

import (
	"encoding/json"
	"fmt"

	"github.com/Dosada05/retrogaming-api/models"
	"github.com/Dosada05/retrogaming-api/negotiation"
	"github.com/go-openapi/spec"
	"github.com/swaggo/swag"
)

const (
	LeaderboardTag            = "Leaderboard"
	leaderboardTagDescription = "API to retrieve high score leaderboard"
	highscoreDefinition       = "Highscore"
)

func init() {
	for _, v := range models.SupportedAPIVersions {
		swag.Register(InstanceName(v), document{version: v})
	}
}

// document реализует swag.Swagger.
type document struct {
	version models.APIVersion
}

func (d document) ReadDoc() string {
	js, err := json.Marshal(Build(d.version))
	if err != nil {
		return ""
	}
	return string(js)
}

// InstanceName is the swag registry name and the document file name: "v1", "v2".
func InstanceName(v models.APIVersion) string {
	return "v" + v.Major()
}

// Path is where the document for v is served.
func Path(v models.APIVersion) string {
	return fmt.Sprintf("/openapi/%s.json", InstanceName(v))
}

// Read returns the serialized document registered for v.
func Read(v models.APIVersion) (string, error) {
	return swag.ReadDoc(InstanceName(v))
}

func Build(version models.APIVersion) *spec.Swagger {
	produces := []string{negotiation.MediaTypeJSON, negotiation.MediaTypeXML}

	paths := map[string]spec.PathItem{
		"/api/v{version}/leaderboard": {
			PathItemProps: spec.PathItemProps{Get: leaderboardOperation("Leaderboard_Get", version, false)},
		},
		"/api/v{version}/leaderboard.{format}": {
			PathItemProps: spec.PathItemProps{Get: leaderboardOperation("Leaderboard_GetWithFormat", version, true)},
		},
	}

	return &spec.Swagger{
		SwaggerProps: spec.SwaggerProps{
			Swagger: "2.0",
			Info: &spec.Info{
				InfoProps: spec.InfoProps{
					Title:       fmt.Sprintf("Retro Gaming Web API v%s OpenAPI", version),
					Version:     string(version),
					Description: "High score leaderboard of the Retro Gaming service.",
				},
			},
			Produces:    produces,
			Paths:       &spec.Paths{Paths: paths},
			Definitions: spec.Definitions{highscoreDefinition: highscoreSchema()},
			Tags:        []spec.Tag{spec.NewTag(LeaderboardTag, leaderboardTagDescription, nil)},
		},
	}
}

func leaderboardOperation(id string, version models.APIVersion, withFormat bool) *spec.Operation {
	list := spec.ArrayProperty(spec.RefSchema("#/definitions/" + highscoreDefinition))
	list.XML = &spec.XMLObject{Name: "ArrayOfHighscore", Wrapped: true}

	op := spec.NewOperation(id).
		WithTags(LeaderboardTag).
		WithSummary("Retrieve a list of leaderboard scores.").
		WithDescription("List of high scores per game, in store order.").
		WithProduces(negotiation.MediaTypeJSON, negotiation.MediaTypeXML).
		RespondsWith(200, spec.NewResponse().
			WithDescription("The list was successfully retrieved.").
			WithSchema(list)).
		RespondsWith(400, spec.NewResponse().WithDescription("Unsupported API version.")).
		RespondsWith(406, spec.NewResponse().WithDescription("No acceptable representation could be produced.")).
		RespondsWith(500, spec.NewResponse().WithDescription("The score store could not be read."))

	op.AddParam(spec.PathParam("version").
		Typed("string", "").
		WithDescription("API version").
		WithEnum(string(version)).
		WithDefault(string(version)))

	if withFormat {
		op.AddParam(spec.PathParam("format").
			Typed("string", "").
			WithDescription("Response representation; overrides the Accept header").
			WithEnum(string(negotiation.FormatJSON), string(negotiation.FormatXML)))
	}
	return op
}

func highscoreSchema() spec.Schema {
	s := spec.Schema{}
	s.Typed("object", "")
	s.WithDescription("One leaderboard entry: a score joined with its gamer's nickname.")
	s.SetProperty("game", *spec.StringProperty())
	s.SetProperty("nickname", *spec.StringProperty())
	s.SetProperty("points", *spec.Int32Property())
	s.WithRequired("game", "nickname", "points")
	s.XML = &spec.XMLObject{Name: highscoreDefinition}
	return s
}
