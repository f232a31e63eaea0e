package handlers

import (
	"io"
	"mime/multipart"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"farmhub/internal/models"
)

func parseObjectID(id string) (primitive.ObjectID, error) {
	return primitive.ObjectIDFromHex(id)
}

// readImage loads one uploaded file into an inline document image.
func readImage(header *multipart.FileHeader) (*models.Image, error) {
	file, err := header.Open()
	if err != nil {
		return nil, err
	}
	defer file.Close()

	data, err := io.ReadAll(file)
	if err != nil {
		return nil, err
	}
	return &models.Image{
		Data:        data,
		ContentType: header.Header.Get("Content-Type"),
	}, nil
}

func readImages(headers []*multipart.FileHeader) ([]models.Image, error) {
	images := make([]models.Image, 0, len(headers))
	for _, header := range headers {
		image, err := readImage(header)
		if err != nil {
			return nil, err
		}
		images = append(images, *image)
	}
	return images, nil
}
