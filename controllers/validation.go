package controllers

import (
	"log"
	"sync"

	"campsite-backend/models"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
)

var registerOnce sync.Once

// RegisterValidators adds the campsite rules to gin's validator engine:
// "pitchtype" accepts piazzola or tenda.
func RegisterValidators() {
	registerOnce.Do(func() {
		v, ok := binding.Validator.Engine().(*validator.Validate)
		if !ok {
			return
		}
		if err := v.RegisterValidation("pitchtype", validPitchType); err != nil {
			log.Fatalf("❌ failed to register pitchtype validator: %v", err)
		}
	})
}

func validPitchType(fl validator.FieldLevel) bool {
	return models.PitchType(fl.Field().String()).Valid()
}
