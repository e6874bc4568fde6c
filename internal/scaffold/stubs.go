package scaffold

import (
	"fmt"
	"strings"

	"github.com/ruthina1/Dev-Genie/internal/project"
)

const gitignore = `node_modules/
.env
.DS_Store
dist/
build/
*.log
coverage/
.vscode/
.idea/
`

func envExample(cfg project.Config) string {
	lines := []string{"PORT=3000", "NODE_ENV=development"}
	if cfg.Has(project.FlagDatabase) {
		lines = append(lines, "DATABASE_URL=mongodb://localhost:27017/"+project.Slug(cfg.ProjectName))
	}
	if cfg.Has(project.FlagAuthentication) {
		lines = append(lines, "JWT_SECRET=your-secret-key-here")
	}
	return strings.Join(lines, "\n") + "\n"
}

func configModule(cfg project.Config) string {
	var b strings.Builder
	b.WriteString("module.exports = {\n")
	b.WriteString("  port: process.env.PORT || 3000,\n")
	b.WriteString("  env: process.env.NODE_ENV || 'development',\n")
	if cfg.Has(project.FlagDatabase) {
		b.WriteString("  database: process.env.DATABASE_URL,\n")
	}
	if cfg.Has(project.FlagAuthentication) {
		b.WriteString("  jwtSecret: process.env.JWT_SECRET || 'default-secret',\n")
	}
	b.WriteString("};\n")
	return b.String()
}

const healthRouter = `const express = require('express');
const router = express.Router();

router.get('/health', (req, res) => {
  res.json({ status: 'healthy', timestamp: new Date().toISOString() });
});

module.exports = router;
`

const errorHandlerModule = `module.exports = (err, req, res, next) => {
  console.error(err.stack);
  res.status(err.status || 500).json({
    error: {
      message: err.message || 'Internal Server Error',
      ...(process.env.NODE_ENV === 'development' && { stack: err.stack }),
    },
  });
};
`

const loggerModule = "const logger = {\n" +
	"  info: (message, ...args) => console.log(`[INFO] ${new Date().toISOString()} - ${message}`, ...args),\n" +
	"  error: (message, ...args) => console.error(`[ERROR] ${new Date().toISOString()} - ${message}`, ...args),\n" +
	"  warn: (message, ...args) => console.warn(`[WARN] ${new Date().toISOString()} - ${message}`, ...args),\n" +
	"};\n\nmodule.exports = logger;\n"

const authRouter = `const express = require('express');
const router = express.Router();
const authController = require('../controllers/authController');

router.post('/register', authController.register);
router.post('/login', authController.login);
router.get('/profile', authController.authenticate, authController.getProfile);

module.exports = router;
`

const authController = `const jwt = require('jsonwebtoken');
const bcrypt = require('bcrypt');
const User = require('../models/User');
const config = require('../config');

const sign = (user) => jwt.sign({ userId: user._id }, config.jwtSecret, { expiresIn: '7d' });

exports.register = async (req, res) => {
  try {
    const { email, password, name } = req.body;

    const existingUser = await User.findOne({ email });
    if (existingUser) {
      return res.status(400).json({ error: 'User already exists' });
    }

    const hashedPassword = await bcrypt.hash(password, 10);
    const user = new User({ email, password: hashedPassword, name });
    await user.save();

    res.status(201).json({
      message: 'User registered successfully',
      token: sign(user),
      user: { id: user._id, email: user.email, name: user.name },
    });
  } catch (error) {
    res.status(500).json({ error: error.message });
  }
};

exports.login = async (req, res) => {
  try {
    const { email, password } = req.body;

    const user = await User.findOne({ email });
    if (!user || !(await bcrypt.compare(password, user.password))) {
      return res.status(401).json({ error: 'Invalid credentials' });
    }

    res.json({
      message: 'Login successful',
      token: sign(user),
      user: { id: user._id, email: user.email, name: user.name },
    });
  } catch (error) {
    res.status(500).json({ error: error.message });
  }
};

exports.authenticate = (req, res, next) => {
  const token = req.headers.authorization?.split(' ')[1];
  if (!token) {
    return res.status(401).json({ error: 'No token provided' });
  }
  try {
    req.userId = jwt.verify(token, config.jwtSecret).userId;
    next();
  } catch (error) {
    res.status(401).json({ error: 'Invalid token' });
  }
};

exports.getProfile = async (req, res) => {
  try {
    const user = await User.findById(req.userId).select('-password');
    res.json({ user });
  } catch (error) {
    res.status(500).json({ error: error.message });
  }
};
`

const userSchemaModel = `const mongoose = require('mongoose');

const userSchema = new mongoose.Schema({
  email: { type: String, required: true, unique: true, lowercase: true, trim: true },
  password: { type: String, required: true },
  name: { type: String, required: true },
  createdAt: { type: Date, default: Date.now },
});

module.exports = mongoose.model('User', userSchema);
`

const mvcController = `exports.index = (req, res) => {
  res.json({ message: 'MVC Architecture' });
};
`

const mvcModel = `class User {
  constructor(data) {
    this.id = data.id;
    this.name = data.name;
  }
}

module.exports = User;
`

const mvcRouter = `const express = require('express');
const router = express.Router();
const homeController = require('../controllers/homeController');

router.get('/', homeController.index);

module.exports = router;
`

const cleanEntity = `class User {
  constructor({ id, name, email }) {
    this.id = id;
    this.name = name;
    this.email = email;
  }
}

module.exports = User;
`

const cleanUseCase = `const User = require('../domain/entities/User');

class CreateUser {
  constructor(userRepository) {
    this.userRepository = userRepository;
  }

  async execute(userData) {
    return this.userRepository.create(new User(userData));
  }
}

module.exports = CreateUser;
`

const cleanRepository = `class UserRepository {
  constructor() {
    this.users = [];
  }

  async create(user) {
    this.users.push(user);
    return user;
  }
}

module.exports = UserRepository;
`

const cleanRoute = `app.post('/users', async (req, res, next) => {
  try {
    res.status(201).json(await createUser.execute(req.body));
  } catch (err) {
    next(err);
  }
});
`

const usersRoute = `app.get('/users', (req, res) => {
  res.json({ users: [] });
});
`

func smokeTest(e Entry) string {
	return fmt.Sprintf(`const request = require('supertest');
const app = require(%s);

describe('API Tests', () => {
  test('GET / responds with 200', async () => {
    const response = await request(app).get('/');
    expect(response.status).toBe(200);
  });

  test('GET /health returns healthy status', async () => {
    const response = await request(app).get('/health');
    expect(response.status).toBe(200);
    expect(response.body.status).toBe('healthy');
  });
});
`, jsString(e.RequirePath()))
}

var eslintConfig = map[string]any{
	"env":           map[string]bool{"node": true, "es2021": true, "jest": true},
	"extends":       []string{"eslint:recommended"},
	"parserOptions": map[string]string{"ecmaVersion": "latest"},
	"rules":         map[string]string{"no-console": "off"},
}

var prettierConfig = map[string]any{
	"singleQuote":   true,
	"trailingComma": "es5",
	"tabWidth":      2,
	"semi":          true,
}

const huskyPreCommit = `#!/usr/bin/env sh
. "$(dirname -- "$0")/_/husky.sh"

npm run lint --if-present
npm test
`

func loginStub(f project.Feature) string {
	return fmt.Sprintf(`// %s
// %s

const login = async (req, res) => {
  const { email, password } = req.body;
  if (!email || !password) {
    return res.status(400).json({ error: 'email and password are required' });
  }
  res.json({ message: 'Login endpoint ready' });
};

module.exports = { login };
`, oneLine(f.Name), oneLine(f.Description))
}

func dashboardStub(f project.Feature) string {
	return fmt.Sprintf(`// %s
// %s

const getDashboard = async (req, res) => {
  res.json({ dashboard: 'ready' });
};

module.exports = { getDashboard };
`, oneLine(f.Name), oneLine(f.Description))
}

// oneLine keeps user text inside a single // comment line.
func oneLine(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
