package maze

import "github.com/sirupsen/logrus"

var Log = logrus.New()
