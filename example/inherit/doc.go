// Package inherit binds Pug from testdata/inherit.cpp. Pug derives from Dog,
// which derives from Pet, so its table starts with the inherited entries.
package inherit
