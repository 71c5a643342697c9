// Package export renders rollouts and analyses to image files with
// gonum/plot.
package export
