package dapi

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "dapi")
