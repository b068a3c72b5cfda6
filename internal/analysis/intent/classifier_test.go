package intent

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestClassifyGreetingBeatsHelp(t *testing.T) {
	assert.Equal(t, Greeting, Classify("Hello, can you help me?"))
}

func TestClassifyIsStableAcrossCalls(t *testing.T) {
	for range 5 {
		assert.Equal(t, Greeting, Classify("Hello, can you help me?"))
	}
}

func TestClassifyIgnoresCase(t *testing.T) {
	assert.Equal(t, Pricing, Classify("HOW MUCH DOES IT COST?"))
}

func TestClassifyEachGroup(t *testing.T) {
	cases := map[string]Intent{
		"hi":                                 Greeting,
		"I need some assistance":             Help,
		"show me a case study":               Projects,
		"do you do IoT?":                     Services,
		"what's your budget range":           Pricing,
		"I'd like to set up a meeting":       Contact,
		"tell me about the weather in Paris": Fallback,
	}
	for text, want := range cases {
		assert.Equal(t, want, Classify(text), text)
	}
}

func TestClassifyFirstGroupWinsOnOverlap(t *testing.T) {
	// "portfolio" (projects) and "cost" (pricing) both match.
	assert.Equal(t, Projects, Classify("what does a portfolio site cost"))
}

func TestGroupsOrder(t *testing.T) {
	got := Groups()
	want := []Intent{Greeting, Help, Projects, Services, Pricing, Contact}
	if assert.Len(t, got, len(want)) {
		for i, g := range got {
			assert.Equal(t, want[i], g.Intent)
		}
	}

	got[0].Keywords[0] = "mutated"
	assert.Equal(t, "hello", Groups()[0].Keywords[0])
}

func TestClassifyMatchesInsideWords(t *testing.T) {
	// Substring matching: "this" contains "hi".
	assert.Equal(t, Greeting, Classify("is this expensive?"))
}
