// Package classifier wraps the external multimodal model behind a narrow
// interface and turns its free-text replies into structured verdicts.
// Prompt and response-format knowledge stays inside this package so format
// changes do not ripple into services.
package classifier

import "context"

// Image is an uploaded picture handed to the remote model.
type Image struct {
	Data     []byte
	MIMEType string
}

// Classifier issues one generation request about an image and returns the
// raw text response. Implementations are remote calls: they may fail or
// time out, and failures surface as common.ErrorRemoteService.
type Classifier interface {
	Classify(ctx context.Context, image Image, prompt string) (string, error)
}

// RecyclingTipPrompt asks for recycling guidance about the pictured item.
const RecyclingTipPrompt = "Provide tips on how to recycle the item in the image. Keep conversation to that context itself."

// PlantingVerificationPrompt asks the model to judge planting evidence in
// the TYPE/REASON format ParseVerdict understands.
const PlantingVerificationPrompt = `Analyze this image and determine if it shows a newly planted tree or plant.
Consider: fresh soil, planting context, young plant/tree.
Respond in this format:
TYPE: TREE/PLANT/NO
REASON: Brief explanation
`
