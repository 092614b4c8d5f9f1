package content

import (
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func strPtr(s string) *string { return &s }

func TestParseBodyTolerant(t *testing.T) {
	require.Empty(t, ParseBody(nil).Blocks)
	require.Empty(t, ParseBody(strPtr("")).Blocks)
	require.Empty(t, ParseBody(strPtr("not json")).Blocks)
	require.Empty(t, ParseBody(strPtr(`{"foo":1}`)).Blocks)

	body := ParseBody(strPtr(`{"blocks":[{"type":"markdown","md":"hej"},{"type":"image","src":"x.png"}]}`))
	require.Len(t, body.Blocks, 2)
	require.Equal(t, BlockMarkdown, body.Blocks[0].Type)
	img, ok := body.First(BlockImage)
	require.True(t, ok)
	require.Equal(t, "x.png", img.Src)
}

func TestBuildBodyOrderAndDefaults(t *testing.T) {
	body := BuildBody("pic.png", "", "treść", "", "print(1)")
	require.Len(t, body.Blocks, 3)
	require.Equal(t, BlockImage, body.Blocks[0].Type)
	require.Equal(t, "Ilustracja do treści bloku", body.Blocks[0].Alt)
	require.Equal(t, BlockMarkdown, body.Blocks[1].Type)
	require.Equal(t, BlockCode, body.Blocks[2].Type)
	require.Equal(t, "python", body.Blocks[2].Lang)

	// No image, no code: markdown only.
	body = BuildBody("", "", "tylko tekst", "", "  ")
	require.Len(t, body.Blocks, 1)
	require.Equal(t, BlockMarkdown, body.Blocks[0].Type)
}

func TestBuildBodySanitizesMarkdown(t *testing.T) {
	body := BuildBody("", "", `hej <script>alert(1)</script>`, "", "")
	require.NotContains(t, body.Blocks[0].MD, "<script>")
	require.Contains(t, body.Blocks[0].MD, "hej")
}

func TestBodyEncodeRoundTrip(t *testing.T) {
	encoded, err := BuildBody("", "", "abc", "", "").Encode()
	require.NoError(t, err)
	require.NoError(t, ValidateBody(encoded))

	parsed := ParseBody(&encoded)
	require.Len(t, parsed.Blocks, 1)
	require.Equal(t, "abc", parsed.Blocks[0].MD)
}

func TestValidateBody(t *testing.T) {
	require.NoError(t, ValidateBody(`{"blocks":[{"type":"markdown","md":"x"}]}`))
	require.Error(t, ValidateBody(`{"blocks":[{"type":"video"}]}`))
	require.Error(t, ValidateBody(`{}`))
	require.Error(t, ValidateBody(`not json`))
}

func TestValidateQuizBody(t *testing.T) {
	valid := `{"maxPoints":10,"questions":[{"text":"P1","points":10,"choices":[{"text":"A","correct":true},{"text":"B"}]}]}`
	require.NoError(t, ValidateQuizBody(valid))

	require.Error(t, ValidateQuizBody(`{"questions":[]}`))
	require.Error(t, ValidateQuizBody(`{"questions":[{"text":"P1","choices":[{"text":"A"}]}]}`))
	require.Error(t, ValidateQuizBody(`{"questions":[{"choices":[{"text":"A"},{"text":"B"}]}]}`))
}

func TestParseQuizBodyFallback(t *testing.T) {
	require.Equal(t, 10.0, ParseQuizBody(nil).MaxPoints)
	require.Equal(t, 10.0, ParseQuizBody(strPtr("zepsute")).MaxPoints)
	require.Equal(t, 10.0, ParseQuizBody(strPtr(`{"maxPoints":-2,"questions":[]}`)).MaxPoints)

	body := ParseQuizBody(strPtr(`{"maxPoints":20,"questions":[{"text":"P","choices":[{"text":"A","correct":true},{"text":"B"}],"points":5}]}`))
	require.Equal(t, 20.0, body.MaxPoints)
	require.Len(t, body.Questions, 1)
	require.Equal(t, 5.0, body.SumPoints())
}

func TestQuizNormalize(t *testing.T) {
	body := QuizBody{
		MaxPoints: 10,
		Questions: []QuizQuestion{{
			Text: "P",
			Choices: []QuizChoice{
				{Text: "A", Correct: true},
				{Text: "B", Correct: true},
				{Text: "C"},
			},
		}},
	}

	norm := body.Normalize()
	require.Equal(t, 1.0, norm.Questions[0].Points)
	require.True(t, norm.Questions[0].Choices[0].Correct)
	require.False(t, norm.Questions[0].Choices[1].Correct)
}

func TestImageBlockFromFile(t *testing.T) {
	dir := t.TempDir()

	// 1x1 transparent PNG.
	png, err := base64.StdEncoding.DecodeString(
		"iVBORw0KGgoAAAANSUhEUgAAAAEAAAABCAYAAAAfFcSJAAAADUlEQVR42mNkYPhfDwAChwGA60e6kgAAAABJRU5ErkJggg==")
	require.NoError(t, err)
	imgPath := filepath.Join(dir, "pix.png")
	require.NoError(t, os.WriteFile(imgPath, png, 0o600))

	block, err := ImageBlockFromFile(imgPath, "")
	require.NoError(t, err)
	require.Equal(t, BlockImage, block.Type)
	require.True(t, strings.HasPrefix(block.Src, "data:image/png;base64,"))
	require.Equal(t, "Ilustracja do treści bloku", block.Alt)

	txtPath := filepath.Join(dir, "plain.txt")
	require.NoError(t, os.WriteFile(txtPath, []byte("just text"), 0o600))
	_, err = ImageBlockFromFile(txtPath, "alt")
	require.ErrorIs(t, err, ErrNotImage)
}
