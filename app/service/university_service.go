package service

import (
	"github.com/gofiber/fiber/v2"

	repository "university-enrollment-report/app/repository/postgresql"
)

type UniversityService struct {
	universities repository.UniversityRepository
}

func NewUniversityService(universities repository.UniversityRepository) *UniversityService {
	return &UniversityService{universities: universities}
}

// GetAll lists active universities in their canonical (id) order.
func (s *UniversityService) GetAll(c *fiber.Ctx) error {
	universities, err := s.universities.GetActive(c.Context())
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Failed to load universities"})
	}
	return c.JSON(universities)
}
