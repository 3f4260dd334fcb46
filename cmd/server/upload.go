package main

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
)

func uploadImage(c *gin.Context) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		respondError(c, http.StatusBadRequest, "No file uploaded")
		return
	}

	file, err := fileHeader.Open()
	if err != nil {
		log.Printf("Failed to open uploaded file: %v", err)
		respondError(c, http.StatusInternalServerError, "Error uploading file")
		return
	}
	defer file.Close()

	url, err := fileStore.Save(fileHeader.Filename, file)
	if err != nil {
		log.Printf("Failed to store uploaded file: %v", err)
		respondError(c, http.StatusInternalServerError, "Error uploading file")
		return
	}

	respondOK(c, http.StatusOK, "File uploaded", gin.H{"url": url})
}
