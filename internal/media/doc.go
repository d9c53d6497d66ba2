// Package media reads capture metadata (timestamp and device) from photo
// files. Only reading is supported.
package media
