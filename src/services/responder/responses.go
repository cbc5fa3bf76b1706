package responder

import (
	"os"
	"strings"

	"chatsim/src/models"

	"gopkg.in/yaml.v3"
)

// ResponsesFile is the on-disk shape of a canned responses file.
//
//	responses:
//	  - "Sure, let me look into that."
//	  - "Here is one way to think about it."
type ResponsesFile struct {
	Responses []string `yaml:"responses"`
}

// LoadResponses reads canned replies from a YAML file. Blank entries are dropped.
func LoadResponses(path string) ([]string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, &models.StorageError{Message: "failed to read responses file " + path, Err: err}
	}

	var file ResponsesFile
	if err := yaml.Unmarshal(data, &file); err != nil {
		return nil, &models.StorageError{Message: "failed to parse responses file " + path, Err: err}
	}

	responses := make([]string, 0, len(file.Responses))
	for _, r := range file.Responses {
		if strings.TrimSpace(r) != "" {
			responses = append(responses, r)
		}
	}
	if len(responses) == 0 {
		return nil, &models.ValidationError{Message: "responses file " + path + " has no responses"}
	}
	return responses, nil
}
