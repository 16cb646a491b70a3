package http_rest

import "github.com/sirupsen/logrus"

var log = logrus.WithField("prefix", "http-rest")
