// Package prompts holds the prompt templates sent to the generation provider.
package prompts

import "fmt"

// ProductDescription builds the single-turn prompt for a product description.
// The wording matches what the web client historically sent, so regenerated
// descriptions stay comparable with previously saved ones.
func ProductDescription(productName, keyFeatures, targetAudience, length string) string {
	return fmt.Sprintf(
		`Generate a %s product description for "%s". Key features: %s. Target audience: %s.`,
		length, productName, keyFeatures, targetAudience,
	)
}
