package tests

import (
	"log"
	"os"
	"testing"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"

	"github.com/darasahq/darasa/core"
	"github.com/darasahq/darasa/core/classroom"
	"github.com/darasahq/darasa/core/user"
	appfs "github.com/darasahq/darasa/fs"
)

var (
	conf       *core.Config
	validate   *validator.Validate
	translator ut.Translator
)

func TestMain(m *testing.M) {
	conf = core.NewConfig()
	conf.Debug = false
	conf.TestMode = true

	validate = validator.New()
	translator = newTranslator()
	core.InitValidators(validate, translator)
	user.InitValidators(validate, translator)
	classroom.InitValidators(validate, translator)

	core.ParseEmailTemplates(appfs.FS, "templates/email", conf, testLogger{})

	os.Exit(m.Run())
}

func newTranslator() ut.Translator {
	_en := en.New()
	uni := ut.New(_en, _en)
	translator, _ := uni.GetTranslator("en")
	return translator
}

type testLogger struct{}

func (testLogger) Enable(enabled bool)                {}
func (testLogger) Debug(msg string, a ...interface{}) {}
func (testLogger) Info(msg string, a ...interface{})  {}
func (testLogger) Warn(msg string, a ...interface{})  {}
func (testLogger) Error(msg string, a ...interface{}) { log.Printf("ERROR: %s %v", msg, a) }
func (testLogger) Fatal(msg string, a ...interface{}) { log.Fatalf("FATAL: %s %v", msg, a) }
