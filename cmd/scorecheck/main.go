// scorecheck runs the scoring pipeline against a captured session file
// without starting the server. Useful for eyeballing what a recorded
// session would score.
//
//	scorecheck -records session.json [-model model.json]
package main

import (
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"log"
	"os"

	"github.com/mkravets/liveproof/internal/verification"
)

func main() {
	recordsPath := flag.String("records", "", "path to a JSON file with an array of challenge records")
	modelPath := flag.String("model", "", "path to a trained model artifact (optional)")
	flag.Parse()

	if *recordsPath == "" {
		flag.Usage()
		os.Exit(2)
	}

	data, err := os.ReadFile(*recordsPath)
	if err != nil {
		log.Fatal("Failed to read records file:", err)
	}

	var records []verification.ChallengeRecord
	if err := json.Unmarshal(data, &records); err != nil {
		log.Fatal("Failed to parse records file:", err)
	}

	var model *verification.TrainedModel
	if *modelPath != "" {
		model, err = verification.LoadModel(*modelPath)
		if err != nil {
			log.Fatal("Failed to load model:", err)
		}
	}

	fv := verification.Extract(records)

	fmt.Println("Feature vector")
	fmt.Println("==============")
	for _, name := range verification.FeatureNames {
		v, _ := fv.ValueOf(name)
		fmt.Printf("  %-26s %12.4f\n", name, v)
	}

	probability, contributions, err := verification.Score(fv, model)
	modelUsed := verification.ModelUsedML
	if errors.Is(err, verification.ErrModelNotLoaded) {
		probability, contributions = verification.FallbackScore(fv)
		modelUsed = verification.ModelUsedRule
	} else if err != nil {
		log.Fatal("Scoring failed:", err)
	}

	level := verification.Classify(probability)

	fmt.Println()
	fmt.Printf("Confidence: %.2f%% (%s)\n", probability*100, modelUsed)
	fmt.Printf("Level:      %s (%s)\n", level, level.Label())
	fmt.Println()
	fmt.Println("Contributions (by |weight|)")
	fmt.Println("===========================")
	for _, c := range contributions {
		sign := "-"
		if c.Positive {
			sign = "+"
		}
		fmt.Printf("  %s %-26s %+.4f\n", sign, c.Name, c.Weight)
	}
}
