package bedrock

import (
	"testing"

	bedrocktypes "github.com/aws/aws-sdk-go-v2/service/bedrockruntime/types"
	"github.com/stretchr/testify/suite"

	"github.com/sohansaha616/Speech-to-image-generator/pkg/model"
)

type VisionSuite struct {
	suite.Suite
}

func TestVisionSuite(t *testing.T) {
	suite.Run(t, new(VisionSuite))
}

func (s *VisionSuite) TestNewImageAnalysisGeneratorRequiresImage() {
	generator, err := NewImageAnalysisGenerator("analyze this", nil)
	s.Require().Error(err)
	s.Nil(generator)
}

func (s *VisionSuite) TestResolveModelNameUsesDefault() {
	s.Equal(defaultVisionModelName, resolveModelName(model.GeneratorConfig{}, defaultVisionModelName))
}

func (s *VisionSuite) TestExtractOutputMessage() {
	message := bedrocktypes.Message{Role: bedrocktypes.ConversationRoleAssistant}
	extracted, err := extractOutputMessage(&bedrocktypes.ConverseOutputMemberMessage{Value: message})
	s.Require().NoError(err)
	s.Equal(bedrocktypes.ConversationRoleAssistant, extracted.Role)
}

func (s *VisionSuite) TestExtractOutputMessageWrongVariant() {
	_, err := extractOutputMessage(nil)
	s.Require().Error(err)
}

func (s *VisionSuite) TestExtractMessageTextConcatenatesTextBlocks() {
	message := bedrocktypes.Message{
		Content: []bedrocktypes.ContentBlock{
			&bedrocktypes.ContentBlockMemberText{Value: "{\"is_violent\":"},
			&bedrocktypes.ContentBlockMemberText{Value: "false}"},
		},
	}
	s.Equal("{\"is_violent\":false}", extractMessageText(message))
}

func (s *VisionSuite) TestExtractMessageTextEmptyMessage() {
	s.Empty(extractMessageText(bedrocktypes.Message{}))
}
